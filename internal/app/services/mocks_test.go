package services

import (
	"context"
	"sort"
	"time"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/db"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
)

// fakeTxRunner executes the transaction function directly. The fakes below
// ignore the tx handle, so a nil tx is fine.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	return fn(ctx, nil)
}

// fakeHostelRepo is an in-memory stand-in that mirrors the clamping
// behaviour of the SQL statements.
type fakeHostelRepo struct {
	hostels map[int64]*models.Hostel
	nextID  int64
}

func newFakeHostelRepo() *fakeHostelRepo {
	return &fakeHostelRepo{hostels: make(map[int64]*models.Hostel), nextID: 1}
}

func (f *fakeHostelRepo) add(h *models.Hostel) *models.Hostel {
	if h.ID == 0 {
		h.ID = f.nextID
		f.nextID++
	} else if h.ID >= f.nextID {
		f.nextID = h.ID + 1
	}
	f.hostels[h.ID] = h
	return h
}

func (f *fakeHostelRepo) Create(ctx context.Context, hostel *models.Hostel) error {
	hostel.CreatedAt = time.Now()
	f.add(hostel)
	return nil
}

func (f *fakeHostelRepo) GetByID(ctx context.Context, id int64) (*models.Hostel, error) {
	hostel, ok := f.hostels[id]
	if !ok {
		return nil, apperrors.ErrHostelNotFound
	}
	copied := *hostel
	return &copied, nil
}

func (f *fakeHostelRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Hostel, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeHostelRepo) GetFirst(ctx context.Context) (*models.Hostel, error) {
	if len(f.hostels) == 0 {
		return nil, apperrors.ErrNoHostelsAvailable
	}
	ids := make([]int64, 0, len(f.hostels))
	for id := range f.hostels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return f.GetByID(ctx, ids[0])
}

func (f *fakeHostelRepo) GetAll(ctx context.Context) ([]*models.Hostel, error) {
	var out []*models.Hostel
	for _, h := range f.hostels {
		copied := *h
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeHostelRepo) Update(ctx context.Context, hostel *models.Hostel) error {
	stored, ok := f.hostels[hostel.ID]
	if !ok {
		return apperrors.ErrHostelNotFound
	}
	stored.Name = hostel.Name
	stored.Address = hostel.Address
	stored.Capacity = hostel.Capacity
	stored.Description = hostel.Description
	if stored.CurrentOccupancy > stored.Capacity {
		stored.CurrentOccupancy = stored.Capacity
	}
	return nil
}

func (f *fakeHostelRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.hostels[id]; !ok {
		return apperrors.ErrHostelNotFound
	}
	delete(f.hostels, id)
	return nil
}

func (f *fakeHostelRepo) AdjustOccupancy(ctx context.Context, id int64, delta int) error {
	hostel, ok := f.hostels[id]
	if !ok {
		return apperrors.ErrHostelNotFound
	}
	hostel.CurrentOccupancy += delta
	if hostel.CurrentOccupancy < 0 {
		hostel.CurrentOccupancy = 0
	}
	if hostel.CurrentOccupancy > hostel.Capacity {
		hostel.CurrentOccupancy = hostel.Capacity
	}
	return nil
}

func (f *fakeHostelRepo) WithTx(tx pgx.Tx) repositories.IHostelRepository { return f }

// fakeRoomRepo mirrors the room table including the availability recompute.
type fakeRoomRepo struct {
	rooms  map[int64]*models.Room
	nextID int64
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[int64]*models.Room), nextID: 1}
}

func (f *fakeRoomRepo) add(r *models.Room) *models.Room {
	if r.ID == 0 {
		r.ID = f.nextID
		f.nextID++
	} else if r.ID >= f.nextID {
		f.nextID = r.ID + 1
	}
	f.rooms[r.ID] = r
	return r
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *models.Room) error {
	room.CreatedAt = time.Now()
	f.add(room)
	return nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (f *fakeRoomRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Room, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRoomRepo) GetByNumberAndHostel(ctx context.Context, roomNumber string, hostelID int64) (*models.Room, error) {
	for _, room := range f.rooms {
		if room.RoomNumber == roomNumber && room.HostelID == hostelID {
			copied := *room
			return &copied, nil
		}
	}
	return nil, apperrors.ErrRoomNotFound
}

func (f *fakeRoomRepo) GetAll(ctx context.Context, filter repositories.RoomFilter) ([]*models.Room, error) {
	var out []*models.Room
	for _, room := range f.rooms {
		if filter.HostelID != nil && room.HostelID != *filter.HostelID {
			continue
		}
		if filter.IsAvailable != nil && room.IsAvailable != *filter.IsAvailable {
			continue
		}
		copied := *room
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRoomRepo) Update(ctx context.Context, room *models.Room) error {
	stored, ok := f.rooms[room.ID]
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	stored.RoomNumber = room.RoomNumber
	stored.HostelID = room.HostelID
	stored.Floor = room.Floor
	stored.Capacity = room.Capacity
	stored.Type = room.Type
	stored.Features = room.Features
	stored.Status = room.Status
	stored.IsAvailable = stored.CurrentOccupancy < stored.Capacity
	return nil
}

func (f *fakeRoomRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rooms[id]; !ok {
		return apperrors.ErrRoomNotFound
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepo) AdjustOccupancy(ctx context.Context, id int64, delta int) error {
	room, ok := f.rooms[id]
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	room.CurrentOccupancy += delta
	if room.CurrentOccupancy < 0 {
		room.CurrentOccupancy = 0
	}
	if room.CurrentOccupancy > room.Capacity {
		room.CurrentOccupancy = room.Capacity
	}
	room.IsAvailable = room.CurrentOccupancy < room.Capacity
	return nil
}

func (f *fakeRoomRepo) CountByHostel(ctx context.Context, hostelID int64) (int, error) {
	count := 0
	for _, room := range f.rooms {
		if room.HostelID == hostelID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRoomRepo) WithTx(tx pgx.Tx) repositories.IRoomRepository { return f }

// fakeStudentRepo mirrors the students table.
type fakeStudentRepo struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student), nextID: 1}
}

func (f *fakeStudentRepo) add(s *models.Student) *models.Student {
	if s.ID == 0 {
		s.ID = f.nextID
		f.nextID++
	} else if s.ID >= f.nextID {
		f.nextID = s.ID + 1
	}
	f.students[s.ID] = s
	return s
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	for _, existing := range f.students {
		if existing.RollNumber == student.RollNumber {
			return apperrors.ErrRollNumberAlreadyExists
		}
		if existing.Email == student.Email {
			return apperrors.ErrStudentAlreadyExists
		}
	}
	student.CreatedAt = time.Now()
	f.add(student)
	return nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Student, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeStudentRepo) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	for _, student := range f.students {
		if student.UserID != nil && *student.UserID == userID {
			copied := *student
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, student := range f.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) List(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	var out []*models.Student
	for _, student := range f.students {
		if filter.HostelID != nil && (student.HostelID == nil || *student.HostelID != *filter.HostelID) {
			continue
		}
		if filter.RoomID != nil && (student.RoomID == nil || *student.RoomID != *filter.RoomID) {
			continue
		}
		if filter.IsCheckedIn != nil && student.IsCheckedIn != *filter.IsCheckedIn {
			continue
		}
		copied := *student
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	stored, ok := f.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	stored.RollNumber = student.RollNumber
	stored.FullName = student.FullName
	stored.PaymentStatus = student.PaymentStatus
	stored.ContactNumber = student.ContactNumber
	stored.EmergencyContact = student.EmergencyContact
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) Assign(ctx context.Context, id int64, hostelID int64, roomID int64, roomNumber string, checkInDate time.Time) error {
	student, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	student.HostelID = &hostelID
	student.RoomID = &roomID
	student.RoomNumber = &roomNumber
	student.IsCheckedIn = true
	student.CheckInDate = &checkInDate
	student.CheckOutDate = nil
	return nil
}

func (f *fakeStudentRepo) ClearAssignment(ctx context.Context, id int64, checkOutDate time.Time) error {
	student, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	student.HostelID = nil
	student.RoomID = nil
	student.RoomNumber = nil
	student.IsCheckedIn = false
	student.CheckOutDate = &checkOutDate
	return nil
}

func (f *fakeStudentRepo) SetHostel(ctx context.Context, id int64, hostelID *int64) error {
	student, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	student.HostelID = hostelID
	return nil
}

func (f *fakeStudentRepo) UpdateHostelByRoom(ctx context.Context, roomID int64, hostelID int64) error {
	for _, student := range f.students {
		if student.RoomID != nil && *student.RoomID == roomID {
			id := hostelID
			student.HostelID = &id
		}
	}
	return nil
}

func (f *fakeStudentRepo) UpdateRoomLabelByRoom(ctx context.Context, roomID int64, roomNumber string) error {
	for _, student := range f.students {
		if student.RoomID != nil && *student.RoomID == roomID {
			label := roomNumber
			student.RoomNumber = &label
		}
	}
	return nil
}

func (f *fakeStudentRepo) CountByHostel(ctx context.Context, hostelID int64) (int, error) {
	count := 0
	for _, student := range f.students {
		if student.HostelID != nil && *student.HostelID == hostelID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStudentRepo) CountByRoom(ctx context.Context, roomID int64) (int, error) {
	count := 0
	for _, student := range f.students {
		if student.RoomID != nil && *student.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStudentRepo) WithTx(tx pgx.Tx) repositories.IStudentRepository { return f }

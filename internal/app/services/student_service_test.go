package services

import (
	"context"
	"testing"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudentServiceFixture() (StudentService, *occupancyFixture, *fakeUserRepo) {
	f := newOccupancyFixture()
	users := newFakeUserRepo()
	return NewStudentService(f.students, users, f.svc), f, users
}

func addStudentAccount(users *fakeUserRepo, email string) *models.User {
	user := &models.User{Email: email, Role: models.RoleStudent}
	_ = users.Create(context.Background(), user)
	return user
}

func TestCreateStudentNormalizesFields(t *testing.T) {
	svc, f, users := newStudentServiceFixture()
	hostel := f.addHostel(50, 0)
	account := addStudentAccount(users, "student@university.edu")

	student, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		UserID:     account.ID,
		RollNumber: "  CS-2023-042  ",
		FullName:   "John Doe",
		Email:      "Student@University.EDU",
		HostelID:   &hostel.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "CS-2023-042", student.RollNumber)
	assert.Equal(t, "student@university.edu", student.Email)
	assert.Equal(t, models.PaymentPending, student.PaymentStatus)
	require.NotNil(t, student.UserID)
	assert.Equal(t, account.ID, *student.UserID)
	assert.Equal(t, 1, f.hostels.hostels[hostel.ID].CurrentOccupancy)
}

func TestCreateStudentWithHostelAndRoom(t *testing.T) {
	svc, f, users := newStudentServiceFixture()
	hostel := f.addHostel(50, 0)
	room := f.addRoom(hostel.ID, "A-101", 2, 0)
	account := addStudentAccount(users, "student@university.edu")
	label := "A-101"

	student, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		UserID:     account.ID,
		RollNumber: "CS-2023-042",
		FullName:   "John Doe",
		Email:      "student@university.edu",
		HostelID:   &hostel.ID,
		RoomNumber: &label,
	})
	require.NoError(t, err)

	require.NotNil(t, student.RoomID)
	assert.Equal(t, room.ID, *student.RoomID)
	assert.True(t, student.IsCheckedIn)
	assert.Equal(t, 1, f.rooms.rooms[room.ID].CurrentOccupancy)
	assert.Equal(t, 1, f.hostels.hostels[hostel.ID].CurrentOccupancy)
}

func TestCreateStudentValidation(t *testing.T) {
	svc, f, users := newStudentServiceFixture()
	hostel := f.addHostel(50, 0)
	account := addStudentAccount(users, "student@university.edu")

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		UserID:     account.ID,
		RollNumber: " ",
		FullName:   "John Doe",
		Email:      "student@university.edu",
		HostelID:   &hostel.ID,
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateStudentRequiresHostel(t *testing.T) {
	svc, _, users := newStudentServiceFixture()
	account := addStudentAccount(users, "student@university.edu")

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		UserID:     account.ID,
		RollNumber: "CS-2023-042",
		FullName:   "John Doe",
		Email:      "student@university.edu",
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateStudentUnknownUser(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	hostel := f.addHostel(50, 0)

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		UserID:     999,
		RollNumber: "CS-2023-042",
		FullName:   "John Doe",
		Email:      "student@university.edu",
		HostelID:   &hostel.ID,
	})
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestCreateStudentAdminAccountRejected(t *testing.T) {
	svc, f, users := newStudentServiceFixture()
	hostel := f.addHostel(50, 0)
	admin := &models.User{Email: "warden@university.edu", Role: models.RoleAdmin}
	require.NoError(t, users.Create(context.Background(), admin))

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		UserID:     admin.ID,
		RollNumber: "CS-2023-042",
		FullName:   "John Doe",
		Email:      "student@university.edu",
		HostelID:   &hostel.ID,
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, 0, f.hostels.hostels[hostel.ID].CurrentOccupancy)
}

func TestUpdateStudentHostelChangeReassigns(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	oldHostel := f.addHostel(50, 1)
	newHostel := f.addHostel(50, 0)
	student := f.addStudent(&models.Student{
		RollNumber: "R-001",
		Email:      "asha@example.com",
		HostelID:   &oldHostel.ID,
	})

	updated, err := svc.UpdateStudent(context.Background(), student.ID, &dto.UpdateStudentRequest{
		HostelID: &newHostel.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.HostelID)
	assert.Equal(t, newHostel.ID, *updated.HostelID)
	assert.Equal(t, 0, f.hostels.hostels[oldHostel.ID].CurrentOccupancy)
	assert.Equal(t, 1, f.hostels.hostels[newHostel.ID].CurrentOccupancy)
}

func TestUpdateStudentCheckOutToggle(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	hostel := f.addHostel(50, 1)
	room := f.addRoom(hostel.ID, "A-101", 2, 1)
	label := "A-101"
	student := f.addStudent(&models.Student{
		RollNumber: "R-001", Email: "asha@example.com",
		HostelID: &hostel.ID, RoomID: &room.ID, RoomNumber: &label, IsCheckedIn: true,
	})

	notCheckedIn := false
	updated, err := svc.UpdateStudent(context.Background(), student.ID, &dto.UpdateStudentRequest{
		IsCheckedIn: &notCheckedIn,
	})
	require.NoError(t, err)

	assert.False(t, updated.IsCheckedIn)
	assert.Nil(t, updated.RoomID)
	require.NotNil(t, updated.CheckOutDate)
	assert.Equal(t, 0, f.rooms.rooms[room.ID].CurrentOccupancy)
	assert.Equal(t, 0, f.hostels.hostels[hostel.ID].CurrentOccupancy)
}

func TestUpdateStudentCheckInToggleRejected(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	hostel := f.addHostel(50, 1)
	student := f.addStudent(&models.Student{
		RollNumber: "R-001",
		Email:      "asha@example.com",
		HostelID:   &hostel.ID,
	})

	checkedIn := true
	_, err := svc.UpdateStudent(context.Background(), student.ID, &dto.UpdateStudentRequest{
		IsCheckedIn: &checkedIn,
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateStudentProfileFields(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	student := f.addStudent(&models.Student{
		RollNumber: "R-001",
		FullName:   "Asha",
		Email:      "asha@example.com",
	})

	paid := string(models.PaymentPaid)
	contact := "+90 555 111 2233"
	updated, err := svc.UpdateStudent(context.Background(), student.ID, &dto.UpdateStudentRequest{
		PaymentStatus: &paid,
		ContactNumber: &contact,
		EmergencyContact: &dto.EmergencyContactDTO{
			Name: "Ravi", Relation: "Parent", Phone: "+90 555 000 0000",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, contact, updated.ContactNumber)
	assert.Equal(t, "Ravi", updated.EmergencyContact.Name)
}

func TestGetStudentsFilterByCheckedIn(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	hostel := f.addHostel(50, 2)
	room := f.addRoom(hostel.ID, "A-101", 2, 2)
	label := "A-101"
	f.addStudent(&models.Student{
		RollNumber: "R-001", Email: "a@example.com",
		HostelID: &hostel.ID, RoomID: &room.ID, RoomNumber: &label, IsCheckedIn: true,
	})
	f.addStudent(&models.Student{RollNumber: "R-002", Email: "b@example.com"})

	checkedIn := true
	got, err := svc.GetStudents(context.Background(), repositories.StudentFilter{IsCheckedIn: &checkedIn})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "R-001", got[0].RollNumber)
}

func TestDeleteStudentReleasesPlacement(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	hostel := f.addHostel(50, 1)
	room := f.addRoom(hostel.ID, "A-101", 2, 1)
	label := "A-101"
	student := f.addStudent(&models.Student{
		RollNumber: "R-001", Email: "asha@example.com",
		HostelID: &hostel.ID, RoomID: &room.ID, RoomNumber: &label, IsCheckedIn: true,
	})

	require.NoError(t, svc.DeleteStudent(context.Background(), student.ID))

	assert.NotContains(t, f.students.students, student.ID)
	assert.Equal(t, 0, f.rooms.rooms[room.ID].CurrentOccupancy)
	assert.Equal(t, 0, f.hostels.hostels[hostel.ID].CurrentOccupancy)
}

func TestCompleteProfileCreatesRecord(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	hostel := f.addHostel(50, 0)

	student, err := svc.CompleteProfile(context.Background(), 42, "ravi@example.com", &dto.CompleteProfileRequest{
		RollNumber: "CS-2023-007",
		FullName:   "Ravi Kumar",
		HostelID:   hostel.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, student.UserID)
	assert.Equal(t, int64(42), *student.UserID)
	assert.Equal(t, "ravi@example.com", student.Email)
	require.NotNil(t, student.HostelID)
	assert.Equal(t, hostel.ID, *student.HostelID)
	assert.Contains(t, f.students.students, student.ID)
	assert.Equal(t, 1, f.hostels.hostels[hostel.ID].CurrentOccupancy)
}

func TestCompleteProfileUnknownHostel(t *testing.T) {
	svc, _, _ := newStudentServiceFixture()

	_, err := svc.CompleteProfile(context.Background(), 42, "ravi@example.com", &dto.CompleteProfileRequest{
		RollNumber: "CS-2023-007",
		FullName:   "Ravi Kumar",
		HostelID:   999,
	})
	require.ErrorIs(t, err, apperrors.ErrHostelNotFound)
}

func TestCompleteProfileDuplicateRejected(t *testing.T) {
	svc, f, _ := newStudentServiceFixture()
	hostel := f.addHostel(50, 0)
	userID := int64(42)
	f.addStudent(&models.Student{
		UserID:     &userID,
		RollNumber: "CS-2023-007",
		FullName:   "Ravi Kumar",
		Email:      "ravi@example.com",
	})

	_, err := svc.CompleteProfile(context.Background(), userID, "ravi@example.com", &dto.CompleteProfileRequest{
		RollNumber: "CS-2024-001",
		FullName:   "Someone Else",
		HostelID:   hostel.ID,
	})
	require.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)

	// The existing record is untouched and no counter moved.
	assert.Equal(t, "CS-2023-007", f.students.students[1].RollNumber)
	assert.Equal(t, 0, f.hostels.hostels[hostel.ID].CurrentOccupancy)
}

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

func newRoomServiceFixture() (RoomService, *occupancyFixture) {
	f := newOccupancyFixture()
	return NewRoomService(f.tx, f.rooms, f.hostels, f.students, f.svc), f
}

func TestCreateRoomDefaults(t *testing.T) {
	svc, f := newRoomServiceFixture()
	hostel := f.addHostel(100, 0)

	room, err := svc.CreateRoom(context.Background(), &dto.CreateRoomRequest{
		RoomNumber: "A-101",
		HostelID:   hostel.ID,
		Capacity:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoomTypeDouble, room.Type)
	assert.Equal(t, models.RoomStatusOperational, room.Status)
	assert.True(t, room.IsAvailable)
	assert.Equal(t, 0, room.CurrentOccupancy)
}

func TestCreateRoomTypeFromCapacity(t *testing.T) {
	svc, f := newRoomServiceFixture()
	hostel := f.addHostel(100, 0)

	cases := []struct {
		capacity int
		want     models.RoomType
	}{
		{1, models.RoomTypeSingle},
		{3, models.RoomTypeTriple},
		{4, models.RoomTypeQuad},
		{6, models.RoomTypeOther},
	}
	for i, tc := range cases {
		room, err := svc.CreateRoom(context.Background(), &dto.CreateRoomRequest{
			RoomNumber: string(rune('B'+i)) + "-1",
			HostelID:   hostel.ID,
			Capacity:   tc.capacity,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, room.Type)
	}
}

func TestCreateRoomUnknownHostel(t *testing.T) {
	svc, _ := newRoomServiceFixture()

	_, err := svc.CreateRoom(context.Background(), &dto.CreateRoomRequest{
		RoomNumber: "A-101",
		HostelID:   404,
		Capacity:   2,
	})
	require.ErrorIs(t, err, apperrors.ErrHostelNotFound)
}

func TestUpdateRoomRenamePropagatesLabel(t *testing.T) {
	svc, f := newRoomServiceFixture()
	hostel := f.addHostel(100, 1)
	room := f.addRoom(hostel.ID, "A-101", 2, 1)
	label := "A-101"
	occupant := f.addStudent(&models.Student{
		RollNumber: "R-001", Email: "asha@example.com",
		HostelID: &hostel.ID, RoomID: &room.ID, RoomNumber: &label, IsCheckedIn: true,
	})

	newNumber := "B-201"
	updated, err := svc.UpdateRoom(context.Background(), room.ID, &dto.UpdateRoomRequest{
		RoomNumber: &newNumber,
	})
	require.NoError(t, err)

	assert.Equal(t, "B-201", updated.RoomNumber)
	require.NotNil(t, f.students.students[occupant.ID].RoomNumber)
	assert.Equal(t, "B-201", *f.students.students[occupant.ID].RoomNumber)
}

func TestUpdateRoomCapacityBelowOccupancyRefused(t *testing.T) {
	svc, f := newRoomServiceFixture()
	hostel := f.addHostel(100, 2)
	room := f.addRoom(hostel.ID, "A-101", 3, 2)

	smaller := 1
	_, err := svc.UpdateRoom(context.Background(), room.ID, &dto.UpdateRoomRequest{
		Capacity: &smaller,
	})
	require.ErrorIs(t, err, apperrors.ErrRoomInUse)
	assert.Equal(t, 3, f.rooms.rooms[room.ID].Capacity)
}

func TestUpdateRoomHostelChangeMovesOccupants(t *testing.T) {
	svc, f := newRoomServiceFixture()
	oldHostel := f.addHostel(100, 1)
	newHostel := f.addHostel(100, 0)
	room := f.addRoom(oldHostel.ID, "A-101", 2, 1)
	label := "A-101"
	occupant := f.addStudent(&models.Student{
		RollNumber: "R-001", Email: "asha@example.com",
		HostelID: &oldHostel.ID, RoomID: &room.ID, RoomNumber: &label, IsCheckedIn: true,
	})

	updated, err := svc.UpdateRoom(context.Background(), room.ID, &dto.UpdateRoomRequest{
		HostelID: &newHostel.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, newHostel.ID, updated.HostelID)
	assert.Equal(t, 0, f.hostels.hostels[oldHostel.ID].CurrentOccupancy)
	assert.Equal(t, 1, f.hostels.hostels[newHostel.ID].CurrentOccupancy)
	assert.Equal(t, newHostel.ID, *f.students.students[occupant.ID].HostelID)
}

func TestUpdateRoomStatus(t *testing.T) {
	svc, f := newRoomServiceFixture()
	hostel := f.addHostel(100, 0)
	room := f.addRoom(hostel.ID, "A-101", 2, 0)

	status := string(models.RoomStatusMaintenance)
	updated, err := svc.UpdateRoom(context.Background(), room.ID, &dto.UpdateRoomRequest{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoomStatusMaintenance, updated.Status)
}

func TestDeleteRoomDelegatesOccupancyCheck(t *testing.T) {
	svc, f := newRoomServiceFixture()
	hostel := f.addHostel(100, 1)
	room := f.addRoom(hostel.ID, "A-101", 2, 1)

	err := svc.DeleteRoom(context.Background(), room.ID)
	require.ErrorIs(t, err, apperrors.ErrRoomInUse)
}

func TestGetRoomsAvailabilityFilter(t *testing.T) {
	svc, f := newRoomServiceFixture()
	hostel := f.addHostel(100, 0)
	f.addRoom(hostel.ID, "A-101", 2, 2)
	open := f.addRoom(hostel.ID, "A-102", 2, 1)
	other := f.addHostel(50, 0)
	f.addRoom(other.ID, "B-201", 1, 0)

	available := true
	rooms, err := svc.GetRooms(context.Background(), repositories.RoomFilter{
		HostelID:    &hostel.ID,
		IsAvailable: &available,
	})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, open.ID, rooms[0].ID)

	full := false
	rooms, err = svc.GetRooms(context.Background(), repositories.RoomFilter{IsAvailable: &full})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "A-101", rooms[0].RoomNumber)
}

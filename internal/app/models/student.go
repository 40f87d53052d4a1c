package models

import (
	"time"
)

// EmergencyContact holds the person to notify for a student
type EmergencyContact struct {
	Name     string `json:"name,omitempty" db:"emergency_name"`
	Relation string `json:"relation,omitempty" db:"emergency_relation"`
	Phone    string `json:"phone,omitempty" db:"emergency_phone"`
}

// Student defines a student's residency record based on the 'students' table.
// RoomID is the structural reference to the assigned room; RoomNumber is a
// cached display label kept in sync with it so reads never need a join.
// HostelID, RoomID, IsCheckedIn and the two counters on Room/Hostel are only
// ever changed together, through the occupancy service.
type Student struct {
	ID               int64            `json:"id" db:"id"`
	UserID           *int64           `json:"userId" db:"user_id"`
	RollNumber       string           `json:"rollNumber" db:"roll_number"`
	FullName         string           `json:"fullName" db:"full_name"`
	Email            string           `json:"email" db:"email"`
	HostelID         *int64           `json:"hostelId,omitempty" db:"hostel_id"`
	RoomID           *int64           `json:"roomId,omitempty" db:"room_id"`
	RoomNumber       *string          `json:"room,omitempty" db:"room_number"`
	IsCheckedIn      bool             `json:"is_checked_in" db:"is_checked_in"`
	CheckInDate      *time.Time       `json:"check_in_date,omitempty" db:"check_in_date"`
	CheckOutDate     *time.Time       `json:"check_out_date,omitempty" db:"check_out_date"`
	PaymentStatus    PaymentStatus    `json:"payment_status" db:"payment_status"`
	ContactNumber    string           `json:"contactNumber,omitempty" db:"contact_number"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	User             *User            `json:"user,omitempty"`   // Relation, no db tag
	Hostel           *Hostel          `json:"hostel,omitempty"` // Relation, no db tag
}

// HasAssignment reports whether the student currently holds a hostel room.
func (s *Student) HasAssignment() bool {
	return s.HostelID != nil && s.RoomNumber != nil
}

// AssignedTo reports whether the student's current assignment is exactly
// the given room in the given hostel.
func (s *Student) AssignedTo(hostelID int64, roomNumber string) bool {
	return s.HasAssignment() && *s.HostelID == hostelID && *s.RoomNumber == roomNumber
}

package models

import (
	"time"
)

// Room defines the room model based on the 'rooms' table.
// (RoomNumber, HostelID) is unique. IsAvailable is derived from
// CurrentOccupancy < Capacity and recomputed on every occupancy write.
type Room struct {
	ID               int64      `json:"id" db:"id"`
	RoomNumber       string     `json:"roomNumber" db:"room_number"`
	HostelID         int64      `json:"hostelId" db:"hostel_id"`
	Floor            int        `json:"floor" db:"floor"`
	Capacity         int        `json:"capacity" db:"capacity"`
	CurrentOccupancy int        `json:"currentOccupancy" db:"current_occupancy"`
	IsAvailable      bool       `json:"isAvailable" db:"is_available"`
	Type             RoomType   `json:"type" db:"type"`
	Features         []string   `json:"features" db:"features"`
	Status           RoomStatus `json:"status" db:"status"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	Hostel           *Hostel    `json:"hostel,omitempty"` // Relation, no db tag
}

// IsFull reports whether the room has no free beds left.
func (r *Room) IsFull() bool {
	return r.CurrentOccupancy >= r.Capacity
}

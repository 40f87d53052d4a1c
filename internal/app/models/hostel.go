package models

import (
	"time"
)

// Hostel defines the hostel model based on the 'hostels' table.
// CurrentOccupancy is a stored counter maintained exclusively by the
// occupancy service; it is never recomputed on read.
type Hostel struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Address          string    `json:"address" db:"address"`
	Capacity         int       `json:"capacity" db:"capacity"`
	CurrentOccupancy int       `json:"currentOccupancy" db:"current_occupancy"`
	Description      string    `json:"description,omitempty" db:"description"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

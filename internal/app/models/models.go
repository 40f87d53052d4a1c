package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleStudent RoleType = "student"
)

// RoomType classifies rooms by bed count
type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeDouble RoomType = "Double"
	RoomTypeTriple RoomType = "Triple"
	RoomTypeQuad   RoomType = "Quad"
	RoomTypeOther  RoomType = "Other"
)

// RoomStatus describes the operational state of a room
type RoomStatus string

const (
	RoomStatusOperational RoomStatus = "Operational"
	RoomStatusMaintenance RoomStatus = "Under Maintenance"
	RoomStatusDamaged     RoomStatus = "Damaged"
)

// PaymentStatus tracks a student's hostel fee state
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentOverdue PaymentStatus = "Overdue"
)

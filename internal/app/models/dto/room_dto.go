package dto

// CreateRoomRequest represents a room creation request
type CreateRoomRequest struct {
	RoomNumber string   `json:"roomNumber" binding:"required" example:"A-101"`
	HostelID   int64    `json:"hostelId" binding:"required" example:"1"`
	Floor      int      `json:"floor" binding:"gte=0" example:"1"`
	Capacity   int      `json:"capacity" binding:"required,gt=0" example:"2"`
	Type       string   `json:"type" binding:"omitempty,oneof=Single Double Triple Quad Other" example:"Double"`
	Features   []string `json:"features" example:"attached bathroom,balcony"`
}

// UpdateRoomRequest represents a room update request.
// Pointer fields distinguish "not provided" from zero values.
type UpdateRoomRequest struct {
	RoomNumber *string   `json:"roomNumber" example:"A-101"`
	HostelID   *int64    `json:"hostelId" example:"2"`
	Floor      *int      `json:"floor" binding:"omitempty,gte=0" example:"1"`
	Capacity   *int      `json:"capacity" binding:"omitempty,gt=0" example:"3"`
	Type       *string   `json:"type" binding:"omitempty,oneof=Single Double Triple Quad Other" example:"Triple"`
	Features   *[]string `json:"features"`
	Status     *string   `json:"status" binding:"omitempty,oneof=Operational 'Under Maintenance' Damaged" example:"Operational"`
}

// BookRoomRequest represents a student's room booking request
type BookRoomRequest struct {
	RoomID int64 `json:"roomId" binding:"required" example:"7"`
}

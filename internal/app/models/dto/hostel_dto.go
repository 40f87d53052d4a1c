package dto

// CreateHostelRequest represents a hostel creation request
type CreateHostelRequest struct {
	Name        string `json:"name" binding:"required" example:"North Wing"`
	Address     string `json:"address" binding:"required" example:"12 Campus Road"`
	Capacity    int    `json:"capacity" binding:"required,gt=0" example:"120"`
	Description string `json:"description" example:"Undergraduate hostel near the library"`
}

// UpdateHostelRequest represents a hostel update request.
// Pointer fields distinguish "not provided" from zero values.
type UpdateHostelRequest struct {
	Name        *string `json:"name" example:"North Wing"`
	Address     *string `json:"address" example:"12 Campus Road"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gt=0" example:"150"`
	Description *string `json:"description" example:"Undergraduate hostel near the library"`
}

// ReassignRoomHostelRequest moves a room to a different hostel
type ReassignRoomHostelRequest struct {
	HostelID int64 `json:"hostelId" binding:"required" example:"2"`
}

package dto

import "github.com/Anuragprasad270204/hostel-management/internal/app/models"

// EmergencyContactDTO carries a student's emergency contact details
type EmergencyContactDTO struct {
	Name     string `json:"name" example:"Jane Doe"`
	Relation string `json:"relation" example:"Parent"`
	Phone    string `json:"phone" example:"+90 555 000 0000"`
}

// CreateStudentRequest represents a student record creation request
type CreateStudentRequest struct {
	UserID           int64                `json:"userId" binding:"required" example:"5"`
	RollNumber       string               `json:"rollNumber" binding:"required" example:"CS-2023-042"`
	FullName         string               `json:"fullName" binding:"required" example:"John Doe"`
	Email            string               `json:"email" binding:"required,email" example:"student@university.edu"`
	HostelID         *int64               `json:"hostelId" binding:"required" example:"1"`
	RoomNumber       *string              `json:"room" example:"A-101"`
	ContactNumber    string               `json:"contactNumber" example:"+90 555 111 2233"`
	PaymentStatus    string               `json:"payment_status" binding:"omitempty,oneof=Paid Pending Overdue" example:"Pending"`
	EmergencyContact *EmergencyContactDTO `json:"emergencyContact"`
}

// UpdateStudentRequest represents a student record update request.
// Pointer fields distinguish "not provided" from zero values.
type UpdateStudentRequest struct {
	RollNumber       *string              `json:"rollNumber" example:"CS-2023-042"`
	FullName         *string              `json:"fullName" example:"John Doe"`
	HostelID         *int64               `json:"hostelId" example:"2"`
	IsCheckedIn      *bool                `json:"isCheckedIn" example:"false"`
	ContactNumber    *string              `json:"contactNumber" example:"+90 555 111 2233"`
	PaymentStatus    *string              `json:"payment_status" binding:"omitempty,oneof=Paid Pending Overdue" example:"Paid"`
	EmergencyContact *EmergencyContactDTO `json:"emergencyContact"`
}

// AdmitStudentRequest places a student into a room identified by its label
type AdmitStudentRequest struct {
	HostelID   int64  `json:"hostelId" binding:"required" example:"1"`
	RoomNumber string `json:"room" binding:"required" example:"A-101"`
}

// CompleteProfileRequest lets an authenticated student create their own record
type CompleteProfileRequest struct {
	RollNumber       string               `json:"rollNumber" binding:"required" example:"CS-2023-042"`
	FullName         string               `json:"fullName" binding:"required" example:"John Doe"`
	HostelID         int64                `json:"hostelId" binding:"required" example:"1"`
	ContactNumber    string               `json:"contactNumber" example:"+90 555 111 2233"`
	EmergencyContact *EmergencyContactDTO `json:"emergencyContact"`
}

// ToEmergencyContact maps the DTO to its model representation
func (d *EmergencyContactDTO) ToEmergencyContact() models.EmergencyContact {
	if d == nil {
		return models.EmergencyContact{}
	}
	return models.EmergencyContact{
		Name:     d.Name,
		Relation: d.Relation,
		Phone:    d.Phone,
	}
}

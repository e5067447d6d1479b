package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is a monitored person, linked to a Profile via UserID.
type Patient struct {
	ID             string `gorm:"primaryKey" json:"id"`
	UserID         string `gorm:"index;not null" json:"user_id"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	PhoneNumber    string `json:"phone_number"`
	MedicalHistory string `json:"medical_history"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func (Patient) TableName() string { return "patients" }

func (p *Patient) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	p.UpdatedAt = p.CreatedAt
	return
}

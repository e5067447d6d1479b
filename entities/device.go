package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceCodeESP32ECG is the hardware class bound to a patient by the
// registration flow. One device of this code per patient.
const DeviceCodeESP32ECG = "ESP32_ECG_MONITOR"

// Device is a physical ECG sensor bound to exactly one patient.
// Registration upserts on the (device_code, patient_id) pair; the unique
// index makes concurrent registrations for the same pair safe.
type Device struct {
	ID           string `gorm:"primaryKey" json:"id"`
	DeviceCode   string `gorm:"uniqueIndex:idx_device_code_patient;not null" json:"device_code"`
	DeviceName   string `json:"device_name"`
	PatientID    string `gorm:"uniqueIndex:idx_device_code_patient;not null" json:"patient_id"`
	IsActive     bool   `json:"is_active"`
	BatteryLevel int    `json:"battery_level"`
	LastSync     string `json:"last_sync"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (Device) TableName() string { return "ecg_devices" }

func (d *Device) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	d.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	d.UpdatedAt = d.CreatedAt
	return
}

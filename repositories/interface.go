package repositories

import (
	"errors"

	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
)

// ErrNotFound is returned by lookups that match no row, regardless of the
// backing store.
var ErrNotFound = errors.New("record not found")

type ProfileRepository interface {
	GetByEmail(email string) (*entities.Profile, error)
}

type PatientRepository interface {
	Create(patient *entities.Patient) error
	GetByID(id string) (*entities.Patient, error)
	GetByUserID(userID string) (*entities.Patient, error)
}

type DeviceRepository interface {
	Create(device *entities.Device) error
	GetByID(id string) (*entities.Device, error)
	GetByCodeAndPatient(deviceCode, patientID string) (*entities.Device, error)
	GetActiveByCodeAndPatient(deviceCode, patientID string) (*entities.Device, error)
	Update(device *entities.Device) error
}

type ReadingRepository interface {
	Create(reading *entities.Reading) error
	GetByPatientID(patientID string, limit int) ([]entities.Reading, error)
}

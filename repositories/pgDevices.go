package repositories

import (
	"errors"
	"time"

	"github.com/shubhankarvyas/medipulse-ai-insight/db"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"gorm.io/gorm"
)

type devicePgRepository struct {
	db db.Database
}

func NewDevicePgRepository(database db.Database) DeviceRepository {
	return &devicePgRepository{db: database}
}

func (r *devicePgRepository) Create(device *entities.Device) error {
	return r.db.GetDB().Create(device).Error
}

func (r *devicePgRepository) GetByID(id string) (*entities.Device, error) {
	var device entities.Device
	err := r.db.GetDB().Where("id = ?", id).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (r *devicePgRepository) GetByCodeAndPatient(deviceCode, patientID string) (*entities.Device, error) {
	var device entities.Device
	err := r.db.GetDB().
		Where("device_code = ? AND patient_id = ?", deviceCode, patientID).
		First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (r *devicePgRepository) GetActiveByCodeAndPatient(deviceCode, patientID string) (*entities.Device, error) {
	var device entities.Device
	err := r.db.GetDB().
		Where("device_code = ? AND patient_id = ? AND is_active = ?", deviceCode, patientID, true).
		First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (r *devicePgRepository) Update(device *entities.Device) error {
	device.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Save(device).Error
}

package repositories

import (
	"errors"

	"github.com/shubhankarvyas/medipulse-ai-insight/db"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"gorm.io/gorm"
)

type patientPgRepository struct {
	db db.Database
}

func NewPatientPgRepository(database db.Database) PatientRepository {
	return &patientPgRepository{db: database}
}

func (r *patientPgRepository) Create(patient *entities.Patient) error {
	return r.db.GetDB().Create(patient).Error
}

func (r *patientPgRepository) GetByID(id string) (*entities.Patient, error) {
	var patient entities.Patient
	err := r.db.GetDB().Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientPgRepository) GetByUserID(userID string) (*entities.Patient, error) {
	var patient entities.Patient
	err := r.db.GetDB().Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

package repositories

import (
	"github.com/shubhankarvyas/medipulse-ai-insight/db"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
)

type readingPgRepository struct {
	db db.Database
}

func NewReadingPgRepository(database db.Database) ReadingRepository {
	return &readingPgRepository{db: database}
}

func (r *readingPgRepository) Create(reading *entities.Reading) error {
	return r.db.GetDB().Create(reading).Error
}

func (r *readingPgRepository) GetByPatientID(patientID string, limit int) ([]entities.Reading, error) {
	var readings []entities.Reading
	err := r.db.GetDB().
		Where("patient_id = ?", patientID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&readings).Error
	return readings, err
}

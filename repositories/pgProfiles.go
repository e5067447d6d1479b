package repositories

import (
	"errors"

	"github.com/shubhankarvyas/medipulse-ai-insight/db"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"gorm.io/gorm"
)

type profilePgRepository struct {
	db db.Database
}

func NewProfilePgRepository(database db.Database) ProfileRepository {
	return &profilePgRepository{db: database}
}

func (r *profilePgRepository) GetByEmail(email string) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.GetDB().Where("email = ?", email).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

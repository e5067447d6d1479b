package usecases

import (
	"errors"

	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"github.com/shubhankarvyas/medipulse-ai-insight/repositories"
)

// maxReadingsPerQuery caps how much history one query returns.
const maxReadingsPerQuery = 100

// ReadingsUseCase serves reading history for dashboards.
type ReadingsUseCase struct {
	ReadingRepo repositories.ReadingRepository
}

func NewReadingsUseCase(readingRepo repositories.ReadingRepository) *ReadingsUseCase {
	return &ReadingsUseCase{ReadingRepo: readingRepo}
}

// ListReadings returns the most recent readings for a patient, newest first,
// capped at 100. A patient with no readings yields an empty slice, not an
// error.
func (uc *ReadingsUseCase) ListReadings(patientID string) ([]entities.Reading, error) {
	if patientID == "" {
		return nil, errors.New("patient id is required")
	}
	return uc.ReadingRepo.GetByPatientID(patientID, maxReadingsPerQuery)
}

package cache

import (
	"sync"

	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
)

// LatestReadings keeps the most recent stored reading per patient so the
// dashboard's polling endpoint doesn't hit the database on every tick.
type LatestReadings struct {
	mu        sync.RWMutex
	byPatient map[string]entities.Reading
}

func NewLatestReadings() *LatestReadings {
	return &LatestReadings{byPatient: make(map[string]entities.Reading)}
}

// Set records reading as the latest for its patient.
func (c *LatestReadings) Set(reading entities.Reading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPatient[reading.PatientID] = reading
}

// Get returns the latest reading for a patient, if any has arrived since
// the process started.
func (c *LatestReadings) Get(patientID string) (entities.Reading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	reading, ok := c.byPatient[patientID]
	return reading, ok
}

// Stats reports cache occupancy.
func (c *LatestReadings) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]interface{}{
		"patients_tracked": len(c.byPatient),
	}
}

package cache

import (
	"testing"

	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"github.com/stretchr/testify/assert"
)

func TestLatestReadings(t *testing.T) {
	c := NewLatestReadings()

	_, ok := c.Get("patient-1")
	assert.False(t, ok)

	c.Set(entities.Reading{ID: "r1", PatientID: "patient-1", HeartRate: 70})
	c.Set(entities.Reading{ID: "r2", PatientID: "patient-1", HeartRate: 74})
	c.Set(entities.Reading{ID: "r3", PatientID: "patient-2", HeartRate: 68})

	got, ok := c.Get("patient-1")
	assert.True(t, ok)
	assert.Equal(t, "r2", got.ID, "newer reading replaces older")

	stats := c.Stats()
	assert.Equal(t, 2, stats["patients_tracked"])
}

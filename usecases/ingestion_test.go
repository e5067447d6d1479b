package usecases

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shubhankarvyas/medipulse-ai-insight/cache"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"github.com/shubhankarvyas/medipulse-ai-insight/repositories"
	"github.com/shubhankarvyas/medipulse-ai-insight/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ingestFixtures struct {
	registry *RegistryUseCase
	readings interface {
		repositories.ReadingRepository
		FailNext(error)
		Count() int
	}
	latest    *cache.LatestReadings
	patientID string
}

func newTestIngestion(t *testing.T) (*IngestionUseCase, *ingestFixtures) {
	t.Helper()
	profiles := repositories.NewProfileMemRepository()
	patients := repositories.NewPatientMemRepository()
	devices := repositories.NewDeviceMemRepository()
	readings := repositories.NewReadingMemRepository()
	latest := cache.NewLatestReadings()

	registry := NewRegistryUseCase(profiles, patients, devices, zap.NewNop())
	profiles.Seed(entities.Profile{Email: "alice@example.com", Role: entities.RolePatient})
	reg, err := registry.RegisterDevice("alice@example.com", "ESP32 ECG Monitor")
	require.NoError(t, err)

	uc := NewIngestionUseCase(registry, readings, devices, latest, nil, zap.NewNop())
	return uc, &ingestFixtures{
		registry:  registry,
		readings:  readings,
		latest:    latest,
		patientID: reg.PatientID,
	}
}

func TestSubmitStoresEnrichedReading(t *testing.T) {
	uc, fx := newTestIngestion(t)

	reading, err := uc.Submit(ReadingSubmission{
		PatientID:            fx.patientID,
		HeartRate:            130,
		RRInterval:           460,
		Temperature:          98.6,
		QRSDuration:          95,
		HeartRateVariability: 40,
		STSegment:            0.02,
	})
	require.NoError(t, err)

	assert.True(t, reading.AnomalyDetected)
	require.NotNil(t, reading.AnomalyType)
	assert.Equal(t, services.AnomalyAbnormalHeartRate, *reading.AnomalyType)
	assert.Equal(t, 50, reading.SignalQuality, "|130-72|*2 exceeds the floor")
	assert.NotEmpty(t, reading.Timestamp, "timestamp is server-assigned")
	assert.NotEmpty(t, reading.DeviceID)

	cached, ok := fx.latest.Get(fx.patientID)
	require.True(t, ok)
	assert.Equal(t, reading.ID, cached.ID)
}

func TestSubmitNormalReading(t *testing.T) {
	uc, fx := newTestIngestion(t)

	reading, err := uc.Submit(ReadingSubmission{
		PatientID:            fx.patientID,
		HeartRate:            72,
		RRInterval:           830,
		Temperature:          98.6,
		QRSDuration:          95,
		HeartRateVariability: 40,
		STSegment:            0.02,
	})
	require.NoError(t, err)

	assert.False(t, reading.AnomalyDetected)
	assert.Nil(t, reading.AnomalyType)
	assert.Equal(t, 100, reading.SignalQuality)
}

func TestSubmitUnknownPatientWritesNothing(t *testing.T) {
	uc, fx := newTestIngestion(t)

	_, err := uc.Submit(ReadingSubmission{PatientID: "no-such-patient", HeartRate: 72})
	assert.ErrorIs(t, err, ErrDeviceNotFound)
	assert.Equal(t, 0, fx.readings.Count())
}

func TestSubmitSurfacesStoreFailure(t *testing.T) {
	uc, fx := newTestIngestion(t)
	fx.readings.FailNext(errors.New("connection reset"))

	_, err := uc.Submit(ReadingSubmission{PatientID: fx.patientID, HeartRate: 72})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSubmitRefreshesDeviceSync(t *testing.T) {
	uc, fx := newTestIngestion(t)

	reading, err := uc.Submit(ReadingSubmission{PatientID: fx.patientID, HeartRate: 72})
	require.NoError(t, err)

	device, err := fx.registry.ResolveDeviceForReading(fx.patientID)
	require.NoError(t, err)
	assert.Equal(t, reading.Timestamp, device.LastSync)
}

func TestListReadingsNewestFirstCapped(t *testing.T) {
	_, fx := newTestIngestion(t)
	query := NewReadingsUseCase(fx.readings)

	for i := 0; i < 105; i++ {
		reading := &entities.Reading{
			PatientID: fx.patientID,
			DeviceID:  "dev",
			Timestamp: fmt.Sprintf("2026-08-28T10:%02d:%02dZ", i/60, i%60),
			HeartRate: 70 + i%5,
		}
		require.NoError(t, fx.readings.Create(reading))
	}

	readings, err := query.ListReadings(fx.patientID)
	require.NoError(t, err)
	require.Len(t, readings, 100)
	for i := 1; i < len(readings); i++ {
		assert.GreaterOrEqual(t, readings[i-1].Timestamp, readings[i].Timestamp, "newest first")
	}
}

func TestListReadingsEmptyPatient(t *testing.T) {
	_, fx := newTestIngestion(t)
	query := NewReadingsUseCase(fx.readings)

	readings, err := query.ListReadings("patient-without-data")
	require.NoError(t, err)
	assert.Empty(t, readings)
}

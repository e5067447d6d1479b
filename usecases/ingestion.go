package usecases

import (
	"fmt"
	"time"

	"github.com/shubhankarvyas/medipulse-ai-insight/cache"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"github.com/shubhankarvyas/medipulse-ai-insight/metrics"
	"github.com/shubhankarvyas/medipulse-ai-insight/repositories"
	"github.com/shubhankarvyas/medipulse-ai-insight/services"
	"go.uber.org/zap"
)

// ReadingPublisher pushes stored readings to live subscribers. Optional.
type ReadingPublisher interface {
	Publish(reading entities.Reading)
}

// ReadingSubmission is one telemetry sample as submitted by the agent.
type ReadingSubmission struct {
	PatientID            string
	HeartRate            int
	RRInterval           int
	Temperature          float64
	QRSDuration          int
	HeartRateVariability int
	STSegment            float64
}

// IngestionUseCase receives readings for known devices, computes the derived
// fields and persists them. It is the sole writer of reading rows.
type IngestionUseCase struct {
	Registry    *RegistryUseCase
	ReadingRepo repositories.ReadingRepository
	DeviceRepo  repositories.DeviceRepository
	latest      *cache.LatestReadings
	publisher   ReadingPublisher
	log         *zap.Logger
}

func NewIngestionUseCase(registry *RegistryUseCase, readingRepo repositories.ReadingRepository, deviceRepo repositories.DeviceRepository, latest *cache.LatestReadings, publisher ReadingPublisher, log *zap.Logger) *IngestionUseCase {
	return &IngestionUseCase{
		Registry:    registry,
		ReadingRepo: readingRepo,
		DeviceRepo:  deviceRepo,
		latest:      latest,
		publisher:   publisher,
		log:         log,
	}
}

// Submit resolves the device for the submission's patient, classifies the
// reading and persists it with a server-assigned timestamp. Resolution and
// store failures come back as errors for the handler to wrap in the JSON
// envelope; they never panic out of the service.
func (uc *IngestionUseCase) Submit(sub ReadingSubmission) (*entities.Reading, error) {
	device, err := uc.Registry.ResolveDeviceForReading(sub.PatientID)
	if err != nil {
		metrics.SubmissionsRejected.Inc()
		return nil, err
	}

	detected, category := services.Classify(services.Vitals{
		HeartRate:            sub.HeartRate,
		HeartRateVariability: sub.HeartRateVariability,
		STSegment:            sub.STSegment,
	})

	reading := &entities.Reading{
		DeviceID:             device.ID,
		PatientID:            sub.PatientID,
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		HeartRate:            sub.HeartRate,
		RRInterval:           sub.RRInterval,
		Temperature:          sub.Temperature,
		QRSDuration:          sub.QRSDuration,
		HeartRateVariability: sub.HeartRateVariability,
		STSegment:            sub.STSegment,
		SignalQuality:        services.SignalQuality(sub.HeartRate),
		AnomalyDetected:      detected,
		BatteryLevel:         simulatedBatteryLevel,
	}
	if detected {
		c := category
		reading.AnomalyType = &c
	}

	if err := uc.ReadingRepo.Create(reading); err != nil {
		metrics.SubmissionsRejected.Inc()
		return nil, fmt.Errorf("storing reading: %w", err)
	}

	metrics.ReadingsIngested.Inc()
	if detected {
		metrics.AnomaliesDetected.WithLabelValues(category).Inc()
		uc.log.Warn("anomaly detected",
			zap.String("patient_id", sub.PatientID),
			zap.String("anomaly_type", category),
			zap.Int("heart_rate", sub.HeartRate))
	}

	// Best-effort device refresh, mirrors what the sensor would report.
	device.LastSync = reading.Timestamp
	device.BatteryLevel = reading.BatteryLevel
	if err := uc.DeviceRepo.Update(device); err != nil {
		uc.log.Error("failed to refresh device sync state",
			zap.String("device_id", device.ID), zap.Error(err))
	}

	if uc.latest != nil {
		uc.latest.Set(*reading)
	}
	if uc.publisher != nil {
		uc.publisher.Publish(*reading)
	}

	return reading, nil
}

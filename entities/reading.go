package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reading is one telemetry sample enriched with the derived fields computed
// at ingestion time. Readings are append-only: no update or delete path.
type Reading struct {
	ID                   string  `gorm:"primaryKey" json:"id"`
	DeviceID             string  `gorm:"index;not null" json:"device_id"`
	PatientID            string  `gorm:"index;not null" json:"patient_id"`
	Timestamp            string  `gorm:"index" json:"timestamp"`
	HeartRate            int     `json:"heart_rate"`
	RRInterval           int     `json:"rr_interval"`
	Temperature          float64 `json:"temperature"`
	QRSDuration          int     `json:"qrs_duration"`
	HeartRateVariability int     `json:"heart_rate_variability"`
	STSegment            float64 `json:"st_segment"`
	SignalQuality        int     `json:"signal_quality"`
	AnomalyDetected      bool    `json:"anomaly_detected"`
	AnomalyType          *string `json:"anomaly_type"`
	BatteryLevel         int     `json:"battery_level"`
	CreatedAt            string  `json:"created_at"`
}

func (Reading) TableName() string { return "ecg_readings" }

func (r *Reading) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return
}

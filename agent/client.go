package agent

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultSubmitTimeout bounds each network call so a stalled server cannot
// hang the read loop.
const DefaultSubmitTimeout = 10 * time.Second

// IngestAPI is the slice of the backend the agent talks to.
type IngestAPI interface {
	SetupDevice(patientEmail, deviceName string) (*SetupResult, error)
	SubmitReading(patientID string, frame Frame) (*SubmitResult, error)
}

// SetupResult is the backend's answer to a device registration.
type SetupResult struct {
	Success   bool   `json:"success"`
	PatientID string `json:"patient_id"`
	DeviceID  string `json:"device_id"`
	Error     string `json:"error"`
}

// SubmitResult is the backend's answer to a reading submission.
type SubmitResult struct {
	Success         bool    `json:"success"`
	AnomalyDetected bool    `json:"anomaly_detected"`
	AnomalyType     *string `json:"anomaly_type"`
	Error           string  `json:"error"`
}

// Client talks to the ingestion backend over HTTP.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// SetupDevice calls POST /setup-ecg-device.
func (c *Client) SetupDevice(patientEmail, deviceName string) (*SetupResult, error) {
	var result SetupResult
	resp, err := c.http.R().
		SetBody(map[string]string{
			"patient_email": patientEmail,
			"device_name":   deviceName,
		}).
		SetResult(&result).
		Post("/setup-ecg-device")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("setup-ecg-device: HTTP %d: %s", resp.StatusCode(), resp.String())
	}
	return &result, nil
}

// SubmitReading calls POST /submit-ecg with the parsed frame.
func (c *Client) SubmitReading(patientID string, frame Frame) (*SubmitResult, error) {
	var result SubmitResult
	resp, err := c.http.R().
		SetBody(map[string]interface{}{
			"patient_id":             patientID,
			"heart_rate":             frame.HeartRate,
			"rr_interval":            frame.RRInterval,
			"temperature":            frame.TemperatureF,
			"qrs_duration":           frame.QRSDuration,
			"heart_rate_variability": frame.HeartRateVariability,
			"st_segment":             frame.STSegment,
		}).
		SetResult(&result).
		Post("/submit-ecg")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("submit-ecg: HTTP %d: %s", resp.StatusCode(), resp.String())
	}
	return &result, nil
}

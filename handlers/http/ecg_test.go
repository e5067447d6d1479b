package httpHandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shubhankarvyas/medipulse-ai-insight/cache"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"github.com/shubhankarvyas/medipulse-ai-insight/repositories"
	"github.com/shubhankarvyas/medipulse-ai-insight/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profiles := repositories.NewProfileMemRepository()
	patients := repositories.NewPatientMemRepository()
	devices := repositories.NewDeviceMemRepository()
	readings := repositories.NewReadingMemRepository()
	latest := cache.NewLatestReadings()

	profiles.Seed(entities.Profile{Email: "alice@example.com", Role: entities.RolePatient})
	profiles.Seed(entities.Profile{Email: "doc@example.com", Role: entities.RoleDoctor})

	registry := usecases.NewRegistryUseCase(profiles, patients, devices, zap.NewNop())
	ingestion := usecases.NewIngestionUseCase(registry, readings, devices, latest, nil, zap.NewNop())
	query := usecases.NewReadingsUseCase(readings)

	setupHandler := NewSetupHandler(registry)
	ecgHandler := NewECGHandler(ingestion, query, latest)

	router := gin.New()
	router.POST("/setup-ecg-device", setupHandler.SetupDevice)
	router.POST("/submit-ecg", ecgHandler.SubmitECG)
	router.GET("/ecg-data/:patient_id", ecgHandler.GetECGData)
	router.GET("/ecg-data/:patient_id/latest", ecgHandler.GetLatestECGData)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestIngestionEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	// register the device for alice
	rec, setup := doJSON(t, router, http.MethodPost, "/setup-ecg-device", map[string]string{
		"patient_email": "alice@example.com",
		"device_name":   "ESP32 ECG Monitor",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, setup["success"])
	patientID := setup["patient_id"].(string)
	require.NotEmpty(t, patientID)

	// submit a tachycardic reading
	rec, submit := doJSON(t, router, http.MethodPost, "/submit-ecg", map[string]interface{}{
		"patient_id":             patientID,
		"heart_rate":             130,
		"rr_interval":            460,
		"temperature":            98.6,
		"qrs_duration":           95,
		"heart_rate_variability": 40,
		"st_segment":             0.02,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, submit["success"])
	assert.Equal(t, true, submit["anomaly_detected"])
	assert.Equal(t, "Abnormal Heart Rate", submit["anomaly_type"])

	// the reading comes back from the query endpoint, newest first
	rec, list := doJSON(t, router, http.MethodGet, "/ecg-data/"+patientID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := list["data"].([]interface{})
	require.Len(t, data, 1)
	reading := data[0].(map[string]interface{})
	assert.Equal(t, float64(130), reading["heart_rate"])
	assert.Equal(t, float64(460), reading["rr_interval"])
	assert.Equal(t, 98.6, reading["temperature"])
	assert.Equal(t, float64(50), reading["signal_quality"])
	assert.Equal(t, true, reading["anomaly_detected"])

	// and from the latest-reading cache
	rec, latest := doJSON(t, router, http.MethodGet, "/ecg-data/"+patientID+"/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reading["id"], latest["data"].(map[string]interface{})["id"])
}

func TestSubmitUnknownPatientIsApplicationFailure(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/submit-ecg", map[string]interface{}{
		"patient_id": "no-such-patient",
		"heart_rate": 72,
	})
	// application-level failure, not a transport error
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "no active device")
}

func TestSubmitRejectsBadBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/submit-ecg", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupDeviceUnknownEmail(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/setup-ecg-device", map[string]string{
		"patient_email": "nobody@example.com",
		"device_name":   "ESP32 ECG Monitor",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestSetupDeviceWrongRole(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/setup-ecg-device", map[string]string{
		"patient_email": "doc@example.com",
		"device_name":   "ESP32 ECG Monitor",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "not a patient")
}

func TestLatestBeforeFirstReading(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/ecg-data/someone/latest", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubhankarvyas/medipulse-ai-insight/cache"
	"github.com/shubhankarvyas/medipulse-ai-insight/usecases"
)

type ECGHandler struct {
	ingestion *usecases.IngestionUseCase
	readings  *usecases.ReadingsUseCase
	latest    *cache.LatestReadings
}

func NewECGHandler(ingestion *usecases.IngestionUseCase, readings *usecases.ReadingsUseCase, latest *cache.LatestReadings) *ECGHandler {
	return &ECGHandler{
		ingestion: ingestion,
		readings:  readings,
		latest:    latest,
	}
}

type SubmitECGRequest struct {
	PatientID            string  `json:"patient_id" binding:"required"`
	HeartRate            int     `json:"heart_rate"`
	RRInterval           int     `json:"rr_interval"`
	Temperature          float64 `json:"temperature"`
	QRSDuration          int     `json:"qrs_duration"`
	HeartRateVariability int     `json:"heart_rate_variability"`
	STSegment            float64 `json:"st_segment"`
}

// SubmitECG handles POST /submit-ecg. Ingestion failures are reported in the
// JSON envelope with success:false; only an unparseable body gets a 400.
// Raw errors never cross this boundary.
func (h *ECGHandler) SubmitECG(c *gin.Context) {
	var req SubmitECGRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	reading, err := h.ingestion.Submit(usecases.ReadingSubmission{
		PatientID:            req.PatientID,
		HeartRate:            req.HeartRate,
		RRInterval:           req.RRInterval,
		Temperature:          req.Temperature,
		QRSDuration:          req.QRSDuration,
		HeartRateVariability: req.HeartRateVariability,
		STSegment:            req.STSegment,
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"data":             reading,
		"anomaly_detected": reading.AnomalyDetected,
		"anomaly_type":     reading.AnomalyType,
	})
}

// GetECGData handles GET /ecg-data/:patient_id.
func (h *ECGHandler) GetECGData(c *gin.Context) {
	patientID := c.Param("patient_id")

	readings, err := h.readings.ListReadings(patientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  readings,
		"count": len(readings),
	})
}

// GetLatestECGData handles GET /ecg-data/:patient_id/latest. Served from the
// in-memory cache; 404 until the patient's first reading arrives.
func (h *ECGHandler) GetLatestECGData(c *gin.Context) {
	patientID := c.Param("patient_id")

	reading, ok := h.latest.Get(patientID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No readings received for patient",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": reading,
	})
}

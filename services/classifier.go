package services

// Anomaly categories assigned by the classifier, in evaluation order.
const (
	AnomalyAbnormalHeartRate = "Abnormal Heart Rate"
	AnomalySTElevation       = "ST Segment Elevation"
	AnomalyLowHRV            = "Low Heart Rate Variability"
)

// Vitals is the slice of a reading the classifier looks at.
type Vitals struct {
	HeartRate            int
	HeartRateVariability int
	STSegment            float64
}

// Classify runs the ordered anomaly rules over one reading. Rules are not
// independent: the first match wins and a reading surfaces at most one
// category, even when several conditions hold.
func Classify(v Vitals) (detected bool, category string) {
	switch {
	case v.HeartRate < 50 || v.HeartRate > 120:
		return true, AnomalyAbnormalHeartRate
	case v.STSegment > 0.1:
		return true, AnomalySTElevation
	case v.HeartRateVariability < 20:
		return true, AnomalyLowHRV
	default:
		return false, ""
	}
}

// SignalQuality scores trust in a reading from its deviation off a 72 bpm
// baseline: 100 - |hr-72|*2, floored at 50 and ceilinged at 100. This is a
// coarse heuristic for clinicians, not a statistical confidence.
func SignalQuality(heartRate int) int {
	deviation := heartRate - 72
	if deviation < 0 {
		deviation = -deviation
	}
	score := 100 - deviation*2
	if score < 50 {
		return 50
	}
	if score > 100 {
		return 100
	}
	return score
}

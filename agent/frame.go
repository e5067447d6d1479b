package agent

import (
	"fmt"
	"strconv"
	"strings"
)

// frameFieldCount is fixed by the sensor firmware.
const frameFieldCount = 6

// frameFieldNames, in wire order.
var frameFieldNames = [frameFieldCount]string{
	"heartRate", "rrInterval", "temperatureF", "qrsDuration", "hrv", "stSegment",
}

// Frame is one decoded line of the sensor wire protocol:
// heartRate,rrInterval,temperatureF,qrsDuration,hrv,stSegment
type Frame struct {
	HeartRate            int
	RRInterval           int
	TemperatureF         float64
	QRSDuration          int
	HeartRateVariability int
	STSegment            float64
}

// MalformedFrameError reports a line with the wrong number of fields. The
// frame is unrecoverable and must be dropped, never retried.
type MalformedFrameError struct {
	Line       string
	FieldCount int
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("malformed frame: got %d fields, want %d: %q", e.FieldCount, frameFieldCount, e.Line)
}

// FieldConversionError reports a field that failed numeric conversion.
type FieldConversionError struct {
	Field string
	Value string
}

func (e *FieldConversionError) Error() string {
	return fmt.Sprintf("frame field %s: cannot convert %q", e.Field, e.Value)
}

// ParseFrame decodes one line of the wire protocol. A value of 0 in the
// heart rate or RR interval fields is a legal sentinel for "no reading this
// cycle", not an error.
func ParseFrame(line string) (Frame, error) {
	parts := strings.Split(line, ",")
	if len(parts) != frameFieldCount {
		return Frame{}, &MalformedFrameError{Line: line, FieldCount: len(parts)}
	}

	ints := make([]int, frameFieldCount)
	floats := make([]float64, frameFieldCount)
	for i, raw := range parts {
		raw = strings.TrimSpace(raw)
		switch i {
		case 2, 5: // temperatureF, stSegment
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Frame{}, &FieldConversionError{Field: frameFieldNames[i], Value: raw}
			}
			floats[i] = v
		default:
			v, err := strconv.Atoi(raw)
			if err != nil {
				return Frame{}, &FieldConversionError{Field: frameFieldNames[i], Value: raw}
			}
			ints[i] = v
		}
	}

	return Frame{
		HeartRate:            ints[0],
		RRInterval:           ints[1],
		TemperatureF:         floats[2],
		QRSDuration:          ints[3],
		HeartRateVariability: ints[4],
		STSegment:            floats[5],
	}, nil
}

// String re-serializes the frame in wire order.
func (f Frame) String() string {
	return strings.Join([]string{
		strconv.Itoa(f.HeartRate),
		strconv.Itoa(f.RRInterval),
		strconv.FormatFloat(f.TemperatureF, 'g', -1, 64),
		strconv.Itoa(f.QRSDuration),
		strconv.Itoa(f.HeartRateVariability),
		strconv.FormatFloat(f.STSegment, 'g', -1, 64),
	}, ",")
}

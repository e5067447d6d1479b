package agent

import (
	"bufio"
	"fmt"
	"math/rand"
	"time"

	"go.bug.st/serial"
)

// FrameSource yields newline-terminated frames from the sensor. ReadLine
// errors are transport faults: the agent closes the source and asks its
// SourceOpener for a fresh one.
type FrameSource interface {
	ReadLine() (string, error)
	Close() error
}

// SourceOpener establishes (or re-establishes) the physical connection.
type SourceOpener func() (FrameSource, error)

type serialSource struct {
	port   serial.Port
	reader *bufio.Reader
}

// OpenSerial opens the sensor's serial port, 8N1 at the given baud rate.
func OpenSerial(portName string, baudRate int) (FrameSource, error) {
	mode := &serial.Mode{BaudRate: baudRate}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", portName, err)
	}
	return &serialSource{port: port, reader: bufio.NewReader(port)}, nil
}

func (s *serialSource) ReadLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return line, nil
}

func (s *serialSource) Close() error {
	return s.port.Close()
}

// SimulatedSource produces realistic synthetic frames for testing the full
// pipeline without hardware, pacing one frame per Interval.
type SimulatedSource struct {
	BaseHeartRate int
	Interval      time.Duration
	rng           *rand.Rand
}

func NewSimulatedSource(baseHeartRate int, interval time.Duration) *SimulatedSource {
	if baseHeartRate <= 0 {
		baseHeartRate = 72
	}
	return &SimulatedSource{
		BaseHeartRate: baseHeartRate,
		Interval:      interval,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *SimulatedSource) ReadLine() (string, error) {
	if s.Interval > 0 {
		time.Sleep(s.Interval)
	}

	heartRate := s.BaseHeartRate + s.rng.Intn(17) - 8
	rrInterval := 0
	if heartRate > 0 {
		rrInterval = 60000 / heartRate
	}
	frame := Frame{
		HeartRate:            heartRate,
		RRInterval:           rrInterval,
		TemperatureF:         98.6 + s.rng.Float64() - 0.5,
		QRSDuration:          80 + s.rng.Intn(41),
		HeartRateVariability: 30 + s.rng.Intn(31),
		STSegment:            s.rng.Float64() * 0.2,
	}
	return frame.String() + "\n", nil
}

func (s *SimulatedSource) Close() error { return nil }

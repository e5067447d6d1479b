package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Default loop delays. Pacing bounds throughput between successful
// submissions; the reconnect delay spaces attempts to reopen the sensor
// connection. Plain sleeps, not exponential backoff.
const (
	DefaultSubmitPacing   = 500 * time.Millisecond
	DefaultReconnectDelay = 2 * time.Second
)

// faultKind names the failure classes of the read loop. Each kind routes to
// exactly one recovery action: transport faults reconnect, frame faults drop
// the line, submission faults move on to the next frame.
type faultKind int

const (
	transportFault faultKind = iota
	frameFault
	submissionFault
)

func (k faultKind) String() string {
	switch k {
	case transportFault:
		return "transport"
	case frameFault:
		return "frame"
	case submissionFault:
		return "submission"
	default:
		return "unknown"
	}
}

// Config holds the agent's startup parameters.
type Config struct {
	OwnerEmail     string
	DeviceLabel    string
	SubmitPacing   time.Duration
	ReconnectDelay time.Duration
}

// Agent owns one sensor connection and forwards each valid frame to the
// ingestion backend. It is a supervisory loop, not a batch job: after a
// successful registration it runs until its context is cancelled, treating
// every downstream failure as recoverable.
type Agent struct {
	cfg       Config
	api       IngestAPI
	open      SourceOpener
	log       *zap.Logger
	patientID string
}

func New(cfg Config, api IngestAPI, open SourceOpener, log *zap.Logger) *Agent {
	if cfg.SubmitPacing == 0 {
		cfg.SubmitPacing = DefaultSubmitPacing
	}
	if cfg.ReconnectDelay == 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	return &Agent{cfg: cfg, api: api, open: open, log: log}
}

// Run registers the device and enters the read loop. Registration failure is
// a fatal precondition and the only error path that terminates the agent;
// everything after it recovers in place until ctx is cancelled.
func (a *Agent) Run(ctx context.Context) error {
	reg, err := a.api.SetupDevice(a.cfg.OwnerEmail, a.cfg.DeviceLabel)
	if err != nil {
		return fmt.Errorf("device registration: %w", err)
	}
	if !reg.Success {
		return fmt.Errorf("device registration refused: %s", reg.Error)
	}
	a.patientID = reg.PatientID
	a.log.Info("device registered",
		zap.String("patient_id", reg.PatientID),
		zap.String("device_id", reg.DeviceID))

	var src FrameSource
	defer func() {
		if src != nil {
			_ = src.Close()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if src == nil {
			src, err = a.open()
			if err != nil {
				a.log.Error("sensor connection failed",
					zap.Stringer("fault", transportFault), zap.Error(err))
				if err := a.sleep(ctx, a.cfg.ReconnectDelay); err != nil {
					return err
				}
				continue
			}
			a.log.Info("sensor connected")
		}

		line, err := src.ReadLine()
		if err != nil {
			a.log.Error("sensor read failed, reconnecting",
				zap.Stringer("fault", transportFault), zap.Error(err))
			_ = src.Close()
			src = nil
			if err := a.sleep(ctx, a.cfg.ReconnectDelay); err != nil {
				return err
			}
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		frame, err := ParseFrame(line)
		if err != nil {
			// Unrecoverable data; drop the frame and keep reading.
			a.log.Warn("dropping frame",
				zap.Stringer("fault", frameFault), zap.Error(err))
			continue
		}

		result, err := a.api.SubmitReading(a.patientID, frame)
		switch {
		case err != nil:
			a.log.Error("submission failed",
				zap.Stringer("fault", submissionFault), zap.Error(err))
		case !result.Success:
			a.log.Warn("submission rejected",
				zap.Stringer("fault", submissionFault), zap.String("error", result.Error))
		default:
			a.log.Info("reading sent",
				zap.Int("heart_rate", frame.HeartRate),
				zap.Bool("anomaly_detected", result.AnomalyDetected))
		}

		if err := a.sleep(ctx, a.cfg.SubmitPacing); err != nil {
			return err
		}
	}
}

// sleep waits for d or until ctx is cancelled.
func (a *Agent) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

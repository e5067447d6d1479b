package agent

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	mu          sync.Mutex
	setupResult *SetupResult
	setupErr    error
	submissions []Frame
	stopAfter   int
	cancel      context.CancelFunc
}

func (f *fakeAPI) SetupDevice(patientEmail, deviceName string) (*SetupResult, error) {
	if f.setupErr != nil {
		return nil, f.setupErr
	}
	return f.setupResult, nil
}

func (f *fakeAPI) SubmitReading(patientID string, frame Frame) (*SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, frame)
	if f.stopAfter > 0 && len(f.submissions) >= f.stopAfter && f.cancel != nil {
		f.cancel()
	}
	return &SubmitResult{Success: true}, nil
}

func (f *fakeAPI) submitted() []Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Frame(nil), f.submissions...)
}

// scriptedSource replays a fixed set of lines, then fails with readErr.
type scriptedSource struct {
	lines   []string
	readErr error
	pos     int
	closed  bool
}

func (s *scriptedSource) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", s.readErr
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

func fastConfig() Config {
	return Config{
		OwnerEmail:     "alice@example.com",
		DeviceLabel:    "ESP32 ECG Monitor",
		SubmitPacing:   time.Millisecond,
		ReconnectDelay: time.Millisecond,
	}
}

func TestRunFailsFastWhenRegistrationUnreachable(t *testing.T) {
	api := &fakeAPI{setupErr: errors.New("connection refused")}
	opened := false
	a := New(fastConfig(), api, func() (FrameSource, error) {
		opened = true
		return nil, errors.New("unexpected open")
	}, zap.NewNop())

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device registration")
	assert.False(t, opened, "read loop must not start without a registration")
}

func TestRunFailsFastWhenRegistrationRefused(t *testing.T) {
	api := &fakeAPI{setupResult: &SetupResult{Success: false, Error: "account is not a patient"}}
	a := New(fastConfig(), api, nil, zap.NewNop())

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account is not a patient")
}

func TestRunSkipsBadFramesAndEmptyLines(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	api := &fakeAPI{
		setupResult: &SetupResult{Success: true, PatientID: "patient-1", DeviceID: "device-1"},
		stopAfter:   2,
		cancel:      cancel,
	}
	src := &scriptedSource{
		lines: []string{
			"130,460,98.6,95,40,0.02\n",
			"1,2,3\n",                 // wrong field count
			"72,830,hot,95,40,0.02\n", // conversion failure
			"\n",                      // empty line, skipped silently
			"72,830,98.6,95,40,0.02\n",
		},
		readErr: io.EOF,
	}
	a := New(fastConfig(), api, func() (FrameSource, error) { return src, nil }, zap.NewNop())

	err := a.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	submitted := api.submitted()
	require.Len(t, submitted, 2, "only valid frames are forwarded")
	assert.Equal(t, 130, submitted[0].HeartRate)
	assert.Equal(t, 72, submitted[1].HeartRate)
}

func TestRunReconnectsAfterTransportFault(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	api := &fakeAPI{
		setupResult: &SetupResult{Success: true, PatientID: "patient-1", DeviceID: "device-1"},
		stopAfter:   2,
		cancel:      cancel,
	}
	first := &scriptedSource{
		lines:   []string{"72,830,98.6,95,40,0.02\n"},
		readErr: errors.New("device not configured"),
	}
	second := &scriptedSource{
		lines:   []string{"74,810,98.4,92,38,0.01\n"},
		readErr: io.EOF,
	}

	opens := 0
	opener := func() (FrameSource, error) {
		opens++
		if opens == 1 {
			return first, nil
		}
		return second, nil
	}
	a := New(fastConfig(), api, opener, zap.NewNop())

	err := a.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	assert.True(t, first.closed, "faulted source must be closed before reopening")
	assert.GreaterOrEqual(t, opens, 2)
	require.Len(t, api.submitted(), 2)
}

package repositories

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
)

// In-memory repository implementations backing unit tests and local runs
// without a database. They mirror the postgres repositories' behaviour,
// including the unique (device_code, patient_id) constraint.

type profileMemRepository struct {
	mu       sync.RWMutex
	profiles map[string]entities.Profile // email -> profile
}

func NewProfileMemRepository() *profileMemRepository {
	return &profileMemRepository{profiles: make(map[string]entities.Profile)}
}

// Seed adds a profile, assigning an id if missing.
func (r *profileMemRepository) Seed(profile entities.Profile) entities.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	r.profiles[profile.Email] = profile
	return profile
}

func (r *profileMemRepository) GetByEmail(email string) (*entities.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

type patientMemRepository struct {
	mu       sync.RWMutex
	patients map[string]entities.Patient // id -> patient
}

func NewPatientMemRepository() *patientMemRepository {
	return &patientMemRepository{patients: make(map[string]entities.Patient)}
}

func (r *patientMemRepository) Create(patient *entities.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	patient.CreatedAt = now
	patient.UpdatedAt = now
	r.patients[patient.ID] = *patient
	return nil
}

func (r *patientMemRepository) GetByID(id string) (*entities.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patient, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &patient, nil
}

func (r *patientMemRepository) GetByUserID(userID string) (*entities.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, patient := range r.patients {
		if patient.UserID == userID {
			p := patient
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

type deviceMemRepository struct {
	mu      sync.RWMutex
	devices map[string]entities.Device // id -> device
}

func NewDeviceMemRepository() *deviceMemRepository {
	return &deviceMemRepository{devices: make(map[string]entities.Device)}
}

func (r *deviceMemRepository) Create(device *entities.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.devices {
		if existing.DeviceCode == device.DeviceCode && existing.PatientID == device.PatientID {
			return errors.New("duplicate key value violates unique constraint \"idx_device_code_patient\"")
		}
	}
	if device.ID == "" {
		device.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	device.CreatedAt = now
	device.UpdatedAt = now
	r.devices[device.ID] = *device
	return nil
}

func (r *deviceMemRepository) GetByID(id string) (*entities.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	device, ok := r.devices[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &device, nil
}

func (r *deviceMemRepository) GetByCodeAndPatient(deviceCode, patientID string) (*entities.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, device := range r.devices {
		if device.DeviceCode == deviceCode && device.PatientID == patientID {
			d := device
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (r *deviceMemRepository) GetActiveByCodeAndPatient(deviceCode, patientID string) (*entities.Device, error) {
	device, err := r.GetByCodeAndPatient(deviceCode, patientID)
	if err != nil {
		return nil, err
	}
	if !device.IsActive {
		return nil, ErrNotFound
	}
	return device, nil
}

func (r *deviceMemRepository) Update(device *entities.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[device.ID]; !ok {
		return ErrNotFound
	}
	device.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.devices[device.ID] = *device
	return nil
}

// Count returns the number of device rows, used to assert upsert idempotency.
func (r *deviceMemRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

type readingMemRepository struct {
	mu       sync.RWMutex
	readings []entities.Reading
	failNext error
}

func NewReadingMemRepository() *readingMemRepository {
	return &readingMemRepository{}
}

// FailNext makes the next Create return err, emulating a store fault.
func (r *readingMemRepository) FailNext(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *readingMemRepository) Create(reading *entities.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	if reading.ID == "" {
		reading.ID = uuid.New().String()
	}
	reading.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.readings = append(r.readings, *reading)
	return nil
}

func (r *readingMemRepository) GetByPatientID(patientID string, limit int) ([]entities.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.Reading
	for _, reading := range r.readings {
		if reading.PatientID == patientID {
			out = append(out, reading)
		}
	}
	// RFC3339 UTC timestamps sort lexicographically
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of stored readings.
func (r *readingMemRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.readings)
}

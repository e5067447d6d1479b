package usecases

import (
	"errors"
	"fmt"
	"time"

	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
	"github.com/shubhankarvyas/medipulse-ai-insight/repositories"
	"go.uber.org/zap"
)

var (
	ErrAccountNotFound = errors.New("no account found for that email")
	ErrNotAPatient     = errors.New("account is not a patient")
	ErrDeviceNotFound  = errors.New("no active device registered for patient")
)

// Placeholder demographics applied when registration has to auto-create a
// patient record. Auto-created patients should be corrected by staff; the
// registry logs a warning whenever it falls back to these.
const (
	placeholderBirthDate = "1990-01-01"
	placeholderGender    = "unspecified"
)

// Battery level reported at registration until the hardware reports real
// values over this channel.
const simulatedBatteryLevel = 85

// RegistryUseCase resolves an owner email to an internal device/patient pair,
// creating the device row on first use. It is the sole writer of device rows.
type RegistryUseCase struct {
	ProfileRepo repositories.ProfileRepository
	PatientRepo repositories.PatientRepository
	DeviceRepo  repositories.DeviceRepository
	log         *zap.Logger
}

func NewRegistryUseCase(profileRepo repositories.ProfileRepository, patientRepo repositories.PatientRepository, deviceRepo repositories.DeviceRepository, log *zap.Logger) *RegistryUseCase {
	return &RegistryUseCase{
		ProfileRepo: profileRepo,
		PatientRepo: patientRepo,
		DeviceRepo:  deviceRepo,
		log:         log,
	}
}

// Registration is the result of a successful device registration.
type Registration struct {
	DeviceID  string
	PatientID string
}

// RegisterDevice resolves ownerEmail to a patient and upserts the ECG device
// row keyed on (device code, patient id). Calling it twice with the same
// inputs yields the same device id and leaves exactly one row for that pair.
func (uc *RegistryUseCase) RegisterDevice(ownerEmail, deviceLabel string) (*Registration, error) {
	if ownerEmail == "" {
		return nil, errors.New("patient email is required")
	}

	profile, err := uc.ProfileRepo.GetByEmail(ownerEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	if profile.Role != entities.RolePatient {
		return nil, ErrNotAPatient
	}

	patient, err := uc.PatientRepo.GetByUserID(profile.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		patient = &entities.Patient{
			UserID:      profile.ID,
			DateOfBirth: placeholderBirthDate,
			Gender:      placeholderGender,
		}
		if err := uc.PatientRepo.Create(patient); err != nil {
			return nil, fmt.Errorf("creating patient record: %w", err)
		}
		uc.log.Warn("auto-created patient with placeholder demographics",
			zap.String("patient_id", patient.ID),
			zap.String("email", ownerEmail),
			zap.String("date_of_birth", placeholderBirthDate))
	} else if err != nil {
		return nil, fmt.Errorf("looking up patient: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	device, err := uc.DeviceRepo.GetByCodeAndPatient(entities.DeviceCodeESP32ECG, patient.ID)
	switch {
	case err == nil:
		device.DeviceName = deviceLabel
		device.IsActive = true
		device.BatteryLevel = simulatedBatteryLevel
		device.LastSync = now
		if err := uc.DeviceRepo.Update(device); err != nil {
			return nil, fmt.Errorf("refreshing device: %w", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		device = &entities.Device{
			DeviceCode:   entities.DeviceCodeESP32ECG,
			DeviceName:   deviceLabel,
			PatientID:    patient.ID,
			IsActive:     true,
			BatteryLevel: simulatedBatteryLevel,
			LastSync:     now,
		}
		if err := uc.DeviceRepo.Create(device); err != nil {
			return nil, fmt.Errorf("creating device: %w", err)
		}
		uc.log.Info("registered new ECG device",
			zap.String("device_id", device.ID),
			zap.String("patient_id", patient.ID))
	default:
		return nil, fmt.Errorf("looking up device: %w", err)
	}

	return &Registration{DeviceID: device.ID, PatientID: patient.ID}, nil
}

// ResolveDeviceForReading re-derives the active device for a patient at
// submission time, decoupled from when registration happened.
func (uc *RegistryUseCase) ResolveDeviceForReading(patientID string) (*entities.Device, error) {
	if patientID == "" {
		return nil, ErrDeviceNotFound
	}
	device, err := uc.DeviceRepo.GetActiveByCodeAndPatient(entities.DeviceCodeESP32ECG, patientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("looking up device: %w", err)
	}
	return device, nil
}

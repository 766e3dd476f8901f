package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"labbook/database/repository"
	"labbook/models"
)

// ErrPatientNotFound is returned when the patient does not exist or belongs
// to another account.
var ErrPatientNotFound = errors.New("patient not found")

// DefaultPatientService implements PatientService.
type DefaultPatientService struct {
	Repo   repository.PatientRepository
	Logger *zap.Logger
}

func (s *DefaultPatientService) ListPatients(ctx context.Context, accountID string) ([]models.Patient, error) {
	return s.Repo.ListByAccount(ctx, accountID)
}

func (s *DefaultPatientService) GetPatient(ctx context.Context, accountID, patientID string) (*models.Patient, error) {
	p, err := s.Repo.GetPatient(ctx, patientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.AccountID != accountID {
		return nil, ErrPatientNotFound
	}
	return p, nil
}

func (s *DefaultPatientService) CreatePatient(ctx context.Context, accountID string, input models.PatientInput) (*models.Patient, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	p := &models.Patient{
		ID:         uuid.New().String(),
		AccountID:  accountID,
		Name:       strings.TrimSpace(input.Name),
		NationalID: strings.TrimSpace(input.NationalID),
		BirthDate:  input.BirthDate,
		Gender:     input.Gender,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.Logger.Info("patient registered",
		zap.String("patientID", p.ID),
		zap.String("accountID", accountID))
	return p, nil
}

func validateInput(input models.PatientInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("patient name is required")
	}
	if strings.TrimSpace(input.NationalID) == "" {
		return fmt.Errorf("national identifier is required")
	}
	if input.BirthDate.IsZero() || input.BirthDate.After(time.Now()) {
		return fmt.Errorf("birth date must be in the past")
	}
	switch input.Gender {
	case models.GenderFemale, models.GenderMale, models.GenderOther, models.GenderUndisclosed:
		return nil
	default:
		return fmt.Errorf("unknown gender %q", input.Gender)
	}
}

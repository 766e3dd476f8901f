package patient

import (
	"context"

	"labbook/models"
)

// PatientService manages the patients an account books exams for.
type PatientService interface {
	ListPatients(ctx context.Context, accountID string) ([]models.Patient, error)
	GetPatient(ctx context.Context, accountID, patientID string) (*models.Patient, error)
	CreatePatient(ctx context.Context, accountID string, input models.PatientInput) (*models.Patient, error)
}

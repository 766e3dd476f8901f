package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"labbook/database"
	"labbook/models"
)

// ErrDuplicateNationalID is returned when a patient with the same national
// identifier already exists.
var ErrDuplicateNationalID = errors.New("national identifier already registered")

// PatientRepository defines data access for patient records.
type PatientRepository interface {
	ListByAccount(ctx context.Context, accountID string) ([]models.Patient, error)
	GetPatient(ctx context.Context, id string) (*models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) error
}

// MongoPatientRepo implements PatientRepository backed by MongoDB.
type MongoPatientRepo struct{}

func NewMongoPatientRepo() *MongoPatientRepo {
	return &MongoPatientRepo{}
}

// EnsureIndexes creates the unique index on the national identifier.
func (r *MongoPatientRepo) EnsureIndexes(ctx context.Context) error {
	_, err := database.Collection("patients").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "national_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoPatientRepo) ListByAccount(ctx context.Context, accountID string) ([]models.Patient, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := database.Collection("patients").Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer cur.Close(ctx)

	var patients []models.Patient
	if err := cur.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}
	return patients, nil
}

func (r *MongoPatientRepo) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	var p models.Patient
	err := database.Collection("patients").FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	_, err := database.Collection("patients").InsertOne(ctx, patient)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateNationalID
	}
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

package models

import "time"

// Gender enumeration values accepted for a patient record.
const (
	GenderFemale      = "female"
	GenderMale        = "male"
	GenderOther       = "other"
	GenderUndisclosed = "undisclosed"
)

// Patient is a person an account books exams for. An account may manage
// several patients (dependents); each patient belongs to exactly one account.
// The national identifier is unique per person, enforced by an index at the
// persistence layer.
type Patient struct {
	ID         string    `bson:"id" json:"id"`
	AccountID  string    `bson:"account_id" json:"accountId"`
	Name       string    `bson:"name" json:"name"`
	NationalID string    `bson:"national_id" json:"nationalId"`
	BirthDate  time.Time `bson:"birth_date" json:"birthDate"`
	Gender     string    `bson:"gender" json:"gender"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// PatientInput carries the fields needed to register a new patient.
type PatientInput struct {
	Name       string    `json:"name"`
	NationalID string    `json:"nationalId"`
	BirthDate  time.Time `json:"birthDate"`
	Gender     string    `json:"gender"`
}

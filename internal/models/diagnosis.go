package models

import (
	"time"

	"github.com/google/uuid"
)

type DiagnosisStatus string

const (
	DiagnosisOpen     DiagnosisStatus = "open"
	DiagnosisInReview DiagnosisStatus = "in_review"
	DiagnosisResolved DiagnosisStatus = "resolved"
	DiagnosisClosed   DiagnosisStatus = "closed"
)

func (s DiagnosisStatus) Valid() bool {
	switch s {
	case DiagnosisOpen, DiagnosisInReview, DiagnosisResolved, DiagnosisClosed:
		return true
	}
	return false
}

type Diagnosis struct {
	ID             uuid.UUID       `json:"diagnosis_id" db:"id"`
	UserID         uuid.UUID       `json:"user_id" db:"user_id"`
	FarmID         uuid.UUID       `json:"farm_id" db:"farm_id"`
	UnitID         *uuid.UUID      `json:"unit_id" db:"unit_id"`
	TargetSpecies  TargetSpecies   `json:"target_species" db:"target_species"`
	Status         DiagnosisStatus `json:"status" db:"status"`
	SymptomsText   *string         `json:"symptoms_text" db:"symptoms_text"`
	FinalDiseaseID *uuid.UUID      `json:"final_disease_id" db:"final_disease_id"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`

	Images       []DiagnosisImage `json:"images"`
	Symptoms     []Symptom        `json:"symptoms"`
	FinalDisease *Disease         `json:"final_disease,omitempty"`
}

type DiagnosisImage struct {
	ID          uuid.UUID `json:"diagnosis_image_id" db:"id"`
	DiagnosisID uuid.UUID `json:"diagnosis_id" db:"diagnosis_id"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CapturedAt  time.Time `json:"captured_at" db:"captured_at"`
}

// Prediction is an immutable record written after the external classifier has
// labelled a diagnosis image.
type Prediction struct {
	ID                 uuid.UUID `json:"prediction_id" db:"id"`
	DiagnosisID        uuid.UUID `json:"diagnosis_id" db:"diagnosis_id"`
	DiagnosisImageID   uuid.UUID `json:"diagnosis_image_id" db:"diagnosis_image_id"`
	PredictedDiseaseID uuid.UUID `json:"predicted_disease_id" db:"predicted_disease_id"`
	Confidence         float64   `json:"confidence" db:"confidence"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`

	PredictedDisease *Disease `json:"predicted_disease,omitempty"`
}

type CreateDiagnosisRequest struct {
	FarmID        uuid.UUID     `json:"farm_id" binding:"required"`
	UnitID        *uuid.UUID    `json:"unit_id"`
	TargetSpecies TargetSpecies `json:"target_species" binding:"required"`
	SymptomsText  *string       `json:"symptoms_text"`
	SymptomIDs    []uuid.UUID   `json:"symptom_ids"`
}

type UpdateDiagnosisRequest struct {
	Status         *DiagnosisStatus `json:"status"`
	SymptomsText   *string          `json:"symptoms_text"`
	FinalDiseaseID *uuid.UUID       `json:"final_disease_id"`
	SymptomIDs     []uuid.UUID      `json:"symptom_ids"`
}

type DiagnosisListResponse struct {
	Diagnoses []Diagnosis `json:"diagnoses"`
	Total     int         `json:"total"`
}

type ImageUploadResponse struct {
	DiagnosisImageID uuid.UUID `json:"diagnosis_image_id"`
	ImageURL         string    `json:"image_url"`
	DiagnosisID      uuid.UUID `json:"diagnosis_id"`
	CapturedAt       time.Time `json:"captured_at"`
}

type PredictionListResponse struct {
	Predictions []Prediction `json:"predictions"`
	Total       int          `json:"total"`
}

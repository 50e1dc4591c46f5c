package models

import (
	"github.com/google/uuid"
)

type SeverityLevel string

const (
	SeverityLow    SeverityLevel = "low"
	SeverityMedium SeverityLevel = "medium"
	SeverityHigh   SeverityLevel = "high"
)

func (l SeverityLevel) Valid() bool {
	switch l {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type ApplicationMethod string

const (
	ApplicationWater     ApplicationMethod = "water"
	ApplicationFeed      ApplicationMethod = "feed"
	ApplicationInjection ApplicationMethod = "injection"
	ApplicationTopical   ApplicationMethod = "topical"
	ApplicationOral      ApplicationMethod = "oral"
)

func (m ApplicationMethod) Valid() bool {
	switch m {
	case ApplicationWater, ApplicationFeed, ApplicationInjection, ApplicationTopical, ApplicationOral:
		return true
	}
	return false
}

type Disease struct {
	ID            uuid.UUID     `json:"disease_id" db:"id"`
	DiseaseName   string        `json:"disease_name" db:"disease_name"`
	TargetSpecies TargetSpecies `json:"target_species" db:"target_species"`
	Description   *string       `json:"description" db:"description"`
	Contagious    bool          `json:"contagious" db:"contagious"`
	SeverityLevel SeverityLevel `json:"severity_level" db:"severity_level"`
	Symptoms      []Symptom     `json:"symptoms"`
}

type Symptom struct {
	ID                 uuid.UUID     `json:"symptom_id" db:"id"`
	SymptomName        string        `json:"symptom_name" db:"symptom_name"`
	SymptomDescription *string       `json:"symptom_description" db:"symptom_description"`
	TargetSpecies      TargetSpecies `json:"target_species" db:"target_species"`
}

type Treatment struct {
	ID                uuid.UUID         `json:"treatment_id" db:"id"`
	TreatmentName     string            `json:"treatment_name" db:"treatment_name"`
	MedicationName    *string           `json:"medication_name" db:"medication_name"`
	ApplicationMethod ApplicationMethod `json:"application_method" db:"application_method"`
	DosageText        *string           `json:"dosage_text" db:"dosage_text"`
	DurationDays      *int              `json:"duration_days" db:"duration_days"`
	Precaution        *string           `json:"precaution" db:"precaution"`
	AlternativesNote  *string           `json:"alternatives_note" db:"alternatives_note"`
}

// DiseaseTreatment is the join record linking a disease to a treatment. It
// carries effectiveness notes and a primary flag but has no lifecycle of its
// own outside the pair it connects.
type DiseaseTreatment struct {
	DiseaseID          uuid.UUID  `json:"disease_id" db:"disease_id"`
	TreatmentID        uuid.UUID  `json:"treatment_id" db:"treatment_id"`
	EffectivenessNotes *string    `json:"effectiveness_notes" db:"effectiveness_notes"`
	IsPrimaryTreatment bool       `json:"is_primary_treatment" db:"is_primary_treatment"`
	Treatment          *Treatment `json:"treatment,omitempty"`
}

type CreateDiseaseRequest struct {
	DiseaseName   string        `json:"disease_name" binding:"required"`
	TargetSpecies TargetSpecies `json:"target_species" binding:"required"`
	Description   *string       `json:"description"`
	Contagious    bool          `json:"contagious"`
	SeverityLevel SeverityLevel `json:"severity_level"`
	SymptomIDs    []uuid.UUID   `json:"symptom_ids"`
}

type UpdateDiseaseRequest struct {
	DiseaseName   *string        `json:"disease_name"`
	TargetSpecies *TargetSpecies `json:"target_species"`
	Description   *string        `json:"description"`
	Contagious    *bool          `json:"contagious"`
	SeverityLevel *SeverityLevel `json:"severity_level"`
	SymptomIDs    []uuid.UUID    `json:"symptom_ids"`
}

type CreateSymptomRequest struct {
	SymptomName        string        `json:"symptom_name" binding:"required"`
	SymptomDescription *string       `json:"symptom_description"`
	TargetSpecies      TargetSpecies `json:"target_species" binding:"required"`
}

type UpdateSymptomRequest struct {
	SymptomName        *string        `json:"symptom_name"`
	SymptomDescription *string        `json:"symptom_description"`
	TargetSpecies      *TargetSpecies `json:"target_species"`
}

type CreateTreatmentRequest struct {
	TreatmentName     string            `json:"treatment_name" binding:"required"`
	MedicationName    *string           `json:"medication_name"`
	ApplicationMethod ApplicationMethod `json:"application_method" binding:"required"`
	DosageText        *string           `json:"dosage_text"`
	DurationDays      *int              `json:"duration_days"`
	Precaution        *string           `json:"precaution"`
	AlternativesNote  *string           `json:"alternatives_note"`
}

type UpdateTreatmentRequest struct {
	TreatmentName     *string            `json:"treatment_name"`
	MedicationName    *string            `json:"medication_name"`
	ApplicationMethod *ApplicationMethod `json:"application_method"`
	DosageText        *string            `json:"dosage_text"`
	DurationDays      *int               `json:"duration_days"`
	Precaution        *string            `json:"precaution"`
	AlternativesNote  *string            `json:"alternatives_note"`
}

type LinkTreatmentRequest struct {
	TreatmentID        uuid.UUID `json:"treatment_id" binding:"required"`
	EffectivenessNotes *string   `json:"effectiveness_notes"`
	IsPrimaryTreatment bool      `json:"is_primary_treatment"`
}

type DiseaseListResponse struct {
	Diseases []Disease `json:"diseases"`
	Total    int       `json:"total"`
}

type TreatmentListResponse struct {
	Treatments []Treatment `json:"treatments"`
	Total      int         `json:"total"`
}

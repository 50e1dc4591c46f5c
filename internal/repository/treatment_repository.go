package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

type TreatmentRepository struct {
	db *sqlx.DB
}

func NewTreatmentRepository(db *sqlx.DB) *TreatmentRepository {
	return &TreatmentRepository{db: db}
}

func (r *TreatmentRepository) Create(treatment *models.Treatment) error {
	if treatment.ID == uuid.Nil {
		treatment.ID = uuid.New()
	}

	query := `
		INSERT INTO treatments (id, treatment_name, medication_name, application_method,
		                        dosage_text, duration_days, precaution, alternatives_note)
		VALUES (:id, :treatment_name, :medication_name, :application_method,
		        :dosage_text, :duration_days, :precaution, :alternatives_note)`

	_, err := r.db.NamedExec(query, treatment)
	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}

	return nil
}

func (r *TreatmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	var treatment models.Treatment
	query := `SELECT * FROM treatments WHERE id = $1`

	err := r.db.GetContext(ctx, &treatment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("treatment %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}

	return &treatment, nil
}

func (r *TreatmentRepository) GetAll(ctx context.Context, skip, limit int) ([]models.Treatment, error) {
	var treatments []models.Treatment
	query := `SELECT * FROM treatments ORDER BY treatment_name LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &treatments, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get treatments: %w", err)
	}

	return treatments, nil
}

func (r *TreatmentRepository) UpdatePartial(ctx context.Context, treatmentID uuid.UUID, req *models.UpdateTreatmentRequest) error {
	updateFields := []string{}
	args := map[string]interface{}{"id": treatmentID}

	if req.TreatmentName != nil {
		updateFields = append(updateFields, "treatment_name = :treatment_name")
		args["treatment_name"] = req.TreatmentName
	}
	if req.MedicationName != nil {
		updateFields = append(updateFields, "medication_name = :medication_name")
		args["medication_name"] = req.MedicationName
	}
	if req.ApplicationMethod != nil {
		updateFields = append(updateFields, "application_method = :application_method")
		args["application_method"] = req.ApplicationMethod
	}
	if req.DosageText != nil {
		updateFields = append(updateFields, "dosage_text = :dosage_text")
		args["dosage_text"] = req.DosageText
	}
	if req.DurationDays != nil {
		updateFields = append(updateFields, "duration_days = :duration_days")
		args["duration_days"] = req.DurationDays
	}
	if req.Precaution != nil {
		updateFields = append(updateFields, "precaution = :precaution")
		args["precaution"] = req.Precaution
	}
	if req.AlternativesNote != nil {
		updateFields = append(updateFields, "alternatives_note = :alternatives_note")
		args["alternatives_note"] = req.AlternativesNote
	}

	if len(updateFields) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE treatments SET %s WHERE id = :id`, strings.Join(updateFields, ", "))

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to update treatment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("treatment %s: %w", treatmentID, models.ErrNotFound)
	}

	return nil
}

func (r *TreatmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete treatment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("treatment %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// ============================================================================
// DISEASE-TREATMENT LINKS
// ============================================================================

func (r *TreatmentRepository) LinkToDisease(ctx context.Context, link *models.DiseaseTreatment) error {
	query := `
		INSERT INTO disease_treatments (disease_id, treatment_id, effectiveness_notes, is_primary_treatment)
		VALUES (:disease_id, :treatment_id, :effectiveness_notes, :is_primary_treatment)`

	_, err := r.db.NamedExecContext(ctx, query, link)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("treatment already linked: %w", models.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("disease or treatment: %w", models.ErrNotFound)
		}
		return fmt.Errorf("failed to link treatment to disease: %w", err)
	}

	return nil
}

func (r *TreatmentRepository) GetByDiseaseID(ctx context.Context, diseaseID uuid.UUID) ([]models.DiseaseTreatment, error) {
	rows := []struct {
		models.DiseaseTreatment
		models.Treatment `db:"t"`
	}{}

	query := `
		SELECT dt.disease_id, dt.treatment_id, dt.effectiveness_notes, dt.is_primary_treatment,
		       t.id "t.id", t.treatment_name "t.treatment_name", t.medication_name "t.medication_name",
		       t.application_method "t.application_method", t.dosage_text "t.dosage_text",
		       t.duration_days "t.duration_days", t.precaution "t.precaution",
		       t.alternatives_note "t.alternatives_note"
		FROM disease_treatments dt
		JOIN treatments t ON t.id = dt.treatment_id
		WHERE dt.disease_id = $1
		ORDER BY dt.is_primary_treatment DESC, t.treatment_name`

	if err := r.db.SelectContext(ctx, &rows, query, diseaseID); err != nil {
		return nil, fmt.Errorf("failed to get disease treatments: %w", err)
	}

	links := make([]models.DiseaseTreatment, 0, len(rows))
	for _, row := range rows {
		link := row.DiseaseTreatment
		treatment := row.Treatment
		link.Treatment = &treatment
		links = append(links, link)
	}

	return links, nil
}

func (r *TreatmentRepository) UnlinkFromDisease(ctx context.Context, diseaseID, treatmentID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM disease_treatments WHERE disease_id = $1 AND treatment_id = $2`,
		diseaseID, treatmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to unlink treatment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("disease treatment link: %w", models.ErrNotFound)
	}

	return nil
}

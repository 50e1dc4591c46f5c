package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

type DiagnosisRepository struct {
	db *sqlx.DB
}

func NewDiagnosisRepository(db *sqlx.DB) *DiagnosisRepository {
	return &DiagnosisRepository{db: db}
}

func (r *DiagnosisRepository) BeginTransaction() (*sqlx.Tx, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *DiagnosisRepository) CreateTx(tx *sqlx.Tx, diagnosis *models.Diagnosis) error {
	if diagnosis.ID == uuid.Nil {
		diagnosis.ID = uuid.New()
	}
	if diagnosis.Status == "" {
		diagnosis.Status = models.DiagnosisOpen
	}
	now := time.Now()
	diagnosis.CreatedAt = now
	diagnosis.UpdatedAt = now

	query := `
		INSERT INTO diagnoses (id, user_id, farm_id, unit_id, target_species, status,
		                       symptoms_text, final_disease_id, created_at, updated_at)
		VALUES (:id, :user_id, :farm_id, :unit_id, :target_species, :status,
		        :symptoms_text, :final_disease_id, :created_at, :updated_at)`

	_, err := tx.NamedExec(query, diagnosis)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("farm or unit: %w", models.ErrNotFound)
		}
		return fmt.Errorf("failed to create diagnosis: %w", err)
	}

	return nil
}

// ReplaceSymptomsTx swaps the diagnosis's symptom associations for exactly
// the supplied set. Callers pass an already de-duplicated, validated list.
func (r *DiagnosisRepository) ReplaceSymptomsTx(tx *sqlx.Tx, diagnosisID uuid.UUID, symptomIDs []uuid.UUID) error {
	if _, err := tx.Exec(`DELETE FROM diagnosis_symptoms WHERE diagnosis_id = $1`, diagnosisID); err != nil {
		return fmt.Errorf("failed to clear diagnosis symptoms: %w", err)
	}

	for _, symptomID := range symptomIDs {
		_, err := tx.Exec(
			`INSERT INTO diagnosis_symptoms (diagnosis_id, symptom_id) VALUES ($1, $2)`,
			diagnosisID, symptomID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("symptom %s: %w", symptomID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to add diagnosis symptom: %w", err)
		}
	}

	return nil
}

// HydrationLevel controls which related rows GetByID loads alongside the
// diagnosis row.
type HydrationLevel struct {
	Images       bool
	Symptoms     bool
	FinalDisease bool
}

// HydrateAll loads every relationship.
var HydrateAll = HydrationLevel{Images: true, Symptoms: true, FinalDisease: true}

func (r *DiagnosisRepository) GetByID(ctx context.Context, id uuid.UUID, include HydrationLevel) (*models.Diagnosis, error) {
	var diagnosis models.Diagnosis
	query := `SELECT * FROM diagnoses WHERE id = $1`

	err := r.db.GetContext(ctx, &diagnosis, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("diagnosis %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get diagnosis: %w", err)
	}

	if err := r.hydrate(ctx, &diagnosis, include); err != nil {
		return nil, err
	}

	return &diagnosis, nil
}

func (r *DiagnosisRepository) hydrate(ctx context.Context, diagnosis *models.Diagnosis, include HydrationLevel) error {
	if include.Images {
		images := []models.DiagnosisImage{}
		query := `SELECT * FROM diagnosis_images WHERE diagnosis_id = $1 ORDER BY captured_at`
		if err := r.db.SelectContext(ctx, &images, query, diagnosis.ID); err != nil {
			return fmt.Errorf("failed to load diagnosis images: %w", err)
		}
		diagnosis.Images = images
	}

	if include.Symptoms {
		symptoms := []models.Symptom{}
		query := `
			SELECT s.* FROM symptoms s
			JOIN diagnosis_symptoms ds ON ds.symptom_id = s.id
			WHERE ds.diagnosis_id = $1
			ORDER BY s.symptom_name`
		if err := r.db.SelectContext(ctx, &symptoms, query, diagnosis.ID); err != nil {
			return fmt.Errorf("failed to load diagnosis symptoms: %w", err)
		}
		diagnosis.Symptoms = symptoms
	}

	if include.FinalDisease && diagnosis.FinalDiseaseID != nil {
		var disease models.Disease
		query := `SELECT * FROM diseases WHERE id = $1`
		err := r.db.GetContext(ctx, &disease, query, *diagnosis.FinalDiseaseID)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("failed to load final disease: %w", err)
		}
		if err == nil {
			diagnosis.FinalDisease = &disease
		}
	}

	return nil
}

// GetByUserID lists a user's diagnoses, newest first. The user filter in the
// WHERE clause is the ownership boundary for history reads.
func (r *DiagnosisRepository) GetByUserID(ctx context.Context, userID uuid.UUID, skip, limit int) ([]models.Diagnosis, error) {
	var diagnoses []models.Diagnosis
	query := `
		SELECT * FROM diagnoses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &diagnoses, query, userID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnoses by user: %w", err)
	}

	for i := range diagnoses {
		if err := r.hydrate(ctx, &diagnoses[i], HydrationLevel{Images: true, FinalDisease: true}); err != nil {
			return nil, err
		}
	}

	return diagnoses, nil
}

// UpdatePartialTx applies only the provided fields; updated_at is always
// refreshed, even when nothing else changed.
func (r *DiagnosisRepository) UpdatePartialTx(tx *sqlx.Tx, diagnosisID uuid.UUID, req *models.UpdateDiagnosisRequest) error {
	updateFields := []string{"updated_at = :updated_at"}
	args := map[string]interface{}{
		"id":         diagnosisID,
		"updated_at": time.Now(),
	}

	if req.Status != nil {
		updateFields = append(updateFields, "status = :status")
		args["status"] = req.Status
	}
	if req.SymptomsText != nil {
		updateFields = append(updateFields, "symptoms_text = :symptoms_text")
		args["symptoms_text"] = req.SymptomsText
	}
	if req.FinalDiseaseID != nil {
		updateFields = append(updateFields, "final_disease_id = :final_disease_id")
		args["final_disease_id"] = req.FinalDiseaseID
	}

	query := fmt.Sprintf(`UPDATE diagnoses SET %s WHERE id = :id`, strings.Join(updateFields, ", "))

	result, err := tx.NamedExec(query, args)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("disease %v: %w", req.FinalDiseaseID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update diagnosis: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("diagnosis %s: %w", diagnosisID, models.ErrNotFound)
	}

	return nil
}

// Delete removes the diagnosis row; symptom associations, images and
// predictions cascade at the FK level.
func (r *DiagnosisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM diagnoses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete diagnosis: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("diagnosis %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// ============================================================================
// DIAGNOSIS IMAGES
// ============================================================================

func (r *DiagnosisRepository) CreateImage(ctx context.Context, image *models.DiagnosisImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	if image.CapturedAt.IsZero() {
		image.CapturedAt = time.Now()
	}

	query := `
		INSERT INTO diagnosis_images (id, diagnosis_id, image_url, captured_at)
		VALUES (:id, :diagnosis_id, :image_url, :captured_at)`

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("diagnosis %s: %w", image.DiagnosisID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to create diagnosis image: %w", err)
	}

	return nil
}

func (r *DiagnosisRepository) GetImageByID(ctx context.Context, id uuid.UUID) (*models.DiagnosisImage, error) {
	var image models.DiagnosisImage
	query := `SELECT * FROM diagnosis_images WHERE id = $1`

	err := r.db.GetContext(ctx, &image, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("diagnosis image %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get diagnosis image: %w", err)
	}

	return &image, nil
}

// ============================================================================
// PREDICTIONS
// ============================================================================

// CreatePrediction persists a classifier result. Prediction rows are
// immutable; there is no update path.
func (r *DiagnosisRepository) CreatePrediction(ctx context.Context, prediction *models.Prediction) error {
	if prediction.ID == uuid.Nil {
		prediction.ID = uuid.New()
	}
	prediction.CreatedAt = time.Now()

	query := `
		INSERT INTO predictions (id, diagnosis_id, diagnosis_image_id, predicted_disease_id, confidence, created_at)
		VALUES (:id, :diagnosis_id, :diagnosis_image_id, :predicted_disease_id, :confidence, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, prediction)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("diagnosis, image or disease: %w", models.ErrNotFound)
		}
		return fmt.Errorf("failed to create prediction: %w", err)
	}

	return nil
}

func (r *DiagnosisRepository) GetPredictionsByDiagnosisID(ctx context.Context, diagnosisID uuid.UUID) ([]models.Prediction, error) {
	var predictions []models.Prediction
	query := `SELECT * FROM predictions WHERE diagnosis_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &predictions, query, diagnosisID)
	if err != nil {
		return nil, fmt.Errorf("failed to get predictions: %w", err)
	}

	return predictions, nil
}

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

type DiseaseRepository struct {
	db *sqlx.DB
}

func NewDiseaseRepository(db *sqlx.DB) *DiseaseRepository {
	return &DiseaseRepository{db: db}
}

func (r *DiseaseRepository) BeginTransaction() (*sqlx.Tx, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *DiseaseRepository) CreateTx(tx *sqlx.Tx, disease *models.Disease) error {
	if disease.ID == uuid.Nil {
		disease.ID = uuid.New()
	}
	if disease.SeverityLevel == "" {
		disease.SeverityLevel = models.SeverityMedium
	}

	query := `
		INSERT INTO diseases (id, disease_name, target_species, description, contagious, severity_level)
		VALUES (:id, :disease_name, :target_species, :description, :contagious, :severity_level)`

	_, err := tx.NamedExec(query, disease)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("disease name already exists: %w", models.ErrConflict)
		}
		return fmt.Errorf("failed to create disease: %w", err)
	}

	return nil
}

func (r *DiseaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Disease, error) {
	var disease models.Disease
	query := `SELECT * FROM diseases WHERE id = $1`

	err := r.db.GetContext(ctx, &disease, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("disease %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get disease: %w", err)
	}

	if err := r.loadSymptoms(ctx, &disease); err != nil {
		return nil, err
	}

	return &disease, nil
}

// GetByName resolves a disease by its unique name, case-insensitively. The
// classifier reports labels by name, not ID.
func (r *DiseaseRepository) GetByName(ctx context.Context, name string) (*models.Disease, error) {
	var disease models.Disease
	query := `SELECT * FROM diseases WHERE LOWER(disease_name) = LOWER($1)`

	err := r.db.GetContext(ctx, &disease, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("disease %q: %w", name, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get disease by name: %w", err)
	}

	if err := r.loadSymptoms(ctx, &disease); err != nil {
		return nil, err
	}

	return &disease, nil
}

func (r *DiseaseRepository) GetAll(ctx context.Context, skip, limit int) ([]models.Disease, error) {
	var diseases []models.Disease
	query := `SELECT * FROM diseases ORDER BY disease_name LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &diseases, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get diseases: %w", err)
	}

	for i := range diseases {
		if err := r.loadSymptoms(ctx, &diseases[i]); err != nil {
			return nil, err
		}
	}

	return diseases, nil
}

func (r *DiseaseRepository) loadSymptoms(ctx context.Context, disease *models.Disease) error {
	symptoms := []models.Symptom{}
	query := `
		SELECT s.* FROM symptoms s
		JOIN disease_symptoms ds ON ds.symptom_id = s.id
		WHERE ds.disease_id = $1
		ORDER BY s.symptom_name`

	if err := r.db.SelectContext(ctx, &symptoms, query, disease.ID); err != nil {
		return fmt.Errorf("failed to load disease symptoms: %w", err)
	}

	disease.Symptoms = symptoms
	return nil
}

func (r *DiseaseRepository) UpdatePartialTx(tx *sqlx.Tx, diseaseID uuid.UUID, req *models.UpdateDiseaseRequest) error {
	updateFields := []string{}
	args := map[string]interface{}{"id": diseaseID}

	if req.DiseaseName != nil {
		updateFields = append(updateFields, "disease_name = :disease_name")
		args["disease_name"] = req.DiseaseName
	}
	if req.TargetSpecies != nil {
		updateFields = append(updateFields, "target_species = :target_species")
		args["target_species"] = req.TargetSpecies
	}
	if req.Description != nil {
		updateFields = append(updateFields, "description = :description")
		args["description"] = req.Description
	}
	if req.Contagious != nil {
		updateFields = append(updateFields, "contagious = :contagious")
		args["contagious"] = req.Contagious
	}
	if req.SeverityLevel != nil {
		updateFields = append(updateFields, "severity_level = :severity_level")
		args["severity_level"] = req.SeverityLevel
	}

	if len(updateFields) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE diseases SET %s WHERE id = :id`, strings.Join(updateFields, ", "))

	result, err := tx.NamedExec(query, args)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("disease name already exists: %w", models.ErrConflict)
		}
		return fmt.Errorf("failed to update disease: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("disease %s: %w", diseaseID, models.ErrNotFound)
	}

	return nil
}

// ReplaceSymptomsTx swaps the disease's symptom associations for exactly the
// supplied set: existing join rows are removed and one row inserted per id.
// Callers pass an already de-duplicated, validated list.
func (r *DiseaseRepository) ReplaceSymptomsTx(tx *sqlx.Tx, diseaseID uuid.UUID, symptomIDs []uuid.UUID) error {
	if _, err := tx.Exec(`DELETE FROM disease_symptoms WHERE disease_id = $1`, diseaseID); err != nil {
		return fmt.Errorf("failed to clear disease symptoms: %w", err)
	}

	for _, symptomID := range symptomIDs {
		_, err := tx.Exec(
			`INSERT INTO disease_symptoms (disease_id, symptom_id) VALUES ($1, $2)`,
			diseaseID, symptomID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("symptom %s: %w", symptomID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to add disease symptom: %w", err)
		}
	}

	return nil
}

func (r *DiseaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM diseases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete disease: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("disease %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// ============================================================================
// SYMPTOM CRUD OPERATIONS
// ============================================================================

func (r *DiseaseRepository) CreateSymptom(symptom *models.Symptom) error {
	if symptom.ID == uuid.Nil {
		symptom.ID = uuid.New()
	}

	query := `
		INSERT INTO symptoms (id, symptom_name, symptom_description, target_species)
		VALUES (:id, :symptom_name, :symptom_description, :target_species)`

	_, err := r.db.NamedExec(query, symptom)
	if err != nil {
		return fmt.Errorf("failed to create symptom: %w", err)
	}

	return nil
}

func (r *DiseaseRepository) GetSymptomByID(ctx context.Context, id uuid.UUID) (*models.Symptom, error) {
	var symptom models.Symptom
	query := `SELECT * FROM symptoms WHERE id = $1`

	err := r.db.GetContext(ctx, &symptom, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("symptom %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get symptom: %w", err)
	}

	return &symptom, nil
}

func (r *DiseaseRepository) GetAllSymptoms(ctx context.Context, skip, limit int) ([]models.Symptom, error) {
	var symptoms []models.Symptom
	query := `SELECT * FROM symptoms ORDER BY symptom_name LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &symptoms, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get symptoms: %w", err)
	}

	return symptoms, nil
}

// CountSymptoms returns how many of the given ids exist. Used to validate a
// symptom list before association, so a bad id fails the whole update.
func (r *DiseaseRepository) CountSymptoms(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`SELECT COUNT(*) FROM symptoms WHERE id IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build symptom count query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count symptoms: %w", err)
	}

	return count, nil
}

func (r *DiseaseRepository) UpdateSymptomPartial(ctx context.Context, symptomID uuid.UUID, req *models.UpdateSymptomRequest) error {
	updateFields := []string{}
	args := map[string]interface{}{"id": symptomID}

	if req.SymptomName != nil {
		updateFields = append(updateFields, "symptom_name = :symptom_name")
		args["symptom_name"] = req.SymptomName
	}
	if req.SymptomDescription != nil {
		updateFields = append(updateFields, "symptom_description = :symptom_description")
		args["symptom_description"] = req.SymptomDescription
	}
	if req.TargetSpecies != nil {
		updateFields = append(updateFields, "target_species = :target_species")
		args["target_species"] = req.TargetSpecies
	}

	if len(updateFields) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE symptoms SET %s WHERE id = :id`, strings.Join(updateFields, ", "))

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to update symptom: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("symptom %s: %w", symptomID, models.ErrNotFound)
	}

	return nil
}

func (r *DiseaseRepository) DeleteSymptom(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM symptoms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete symptom: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("symptom %s: %w", id, models.ErrNotFound)
	}

	return nil
}

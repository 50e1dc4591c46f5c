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

type FarmRepository struct {
	db *sqlx.DB
}

func NewFarmRepository(db *sqlx.DB) *FarmRepository {
	return &FarmRepository{db: db}
}

func (r *FarmRepository) Create(farm *models.Farm) error {
	if farm.ID == uuid.Nil {
		farm.ID = uuid.New()
	}
	if farm.FarmStatus == "" {
		farm.FarmStatus = models.FarmStatusActive
	}
	farm.CreatedAt = time.Now()

	query := `
		INSERT INTO farms (id, owner_id, farm_name, address, area_size, farm_type, farm_status, created_at)
		VALUES (:id, :owner_id, :farm_name, :address, :area_size, :farm_type, :farm_status, :created_at)`

	_, err := r.db.NamedExec(query, farm)
	if err != nil {
		return fmt.Errorf("failed to create farm: %w", err)
	}

	return nil
}

func (r *FarmRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Farm, error) {
	var farm models.Farm
	query := `SELECT * FROM farms WHERE id = $1`

	err := r.db.GetContext(ctx, &farm, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("farm %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}

	if err := r.loadUnits(ctx, &farm); err != nil {
		return nil, err
	}

	return &farm, nil
}

func (r *FarmRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Farm, error) {
	var farms []models.Farm
	query := `SELECT * FROM farms WHERE owner_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &farms, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farms by owner: %w", err)
	}

	for i := range farms {
		if err := r.loadUnits(ctx, &farms[i]); err != nil {
			return nil, err
		}
	}

	return farms, nil
}

func (r *FarmRepository) loadUnits(ctx context.Context, farm *models.Farm) error {
	units := []models.FarmUnit{}
	query := `SELECT * FROM farm_units WHERE farm_id = $1 ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &units, query, farm.ID); err != nil {
		return fmt.Errorf("failed to load farm units: %w", err)
	}

	farm.Units = units
	return nil
}

// UpdatePartial applies only the provided fields. owner_id is immutable and
// never part of the SET clause.
func (r *FarmRepository) UpdatePartial(ctx context.Context, farmID uuid.UUID, req *models.UpdateFarmRequest) error {
	updateFields := []string{}
	args := map[string]interface{}{"id": farmID}

	if req.FarmName != nil {
		updateFields = append(updateFields, "farm_name = :farm_name")
		args["farm_name"] = req.FarmName
	}
	if req.Address != nil {
		updateFields = append(updateFields, "address = :address")
		args["address"] = req.Address
	}
	if req.AreaSize != nil {
		updateFields = append(updateFields, "area_size = :area_size")
		args["area_size"] = req.AreaSize
	}
	if req.FarmType != nil {
		updateFields = append(updateFields, "farm_type = :farm_type")
		args["farm_type"] = req.FarmType
	}
	if req.FarmStatus != nil {
		updateFields = append(updateFields, "farm_status = :farm_status")
		args["farm_status"] = req.FarmStatus
	}

	if len(updateFields) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE farms SET %s WHERE id = :id`, strings.Join(updateFields, ", "))

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to update farm: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("farm %s: %w", farmID, models.ErrNotFound)
	}

	return nil
}

// Delete removes the farm row. Units and diagnoses go with it via FK cascade.
func (r *FarmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM farms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete farm: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("farm %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// ============================================================================
// FARM UNIT CRUD OPERATIONS
// ============================================================================

func (r *FarmRepository) CreateUnit(unit *models.FarmUnit) error {
	if unit.ID == uuid.Nil {
		unit.ID = uuid.New()
	}
	unit.CreatedAt = time.Now()

	query := `
		INSERT INTO farm_units (id, farm_id, unit_type, unit_name, target_species, created_at)
		VALUES (:id, :farm_id, :unit_type, :unit_name, :target_species, :created_at)`

	_, err := r.db.NamedExec(query, unit)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("farm %s: %w", unit.FarmID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to create farm unit: %w", err)
	}

	return nil
}

func (r *FarmRepository) GetUnitByID(ctx context.Context, id uuid.UUID) (*models.FarmUnit, error) {
	var unit models.FarmUnit
	query := `SELECT * FROM farm_units WHERE id = $1`

	err := r.db.GetContext(ctx, &unit, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("farm unit %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get farm unit: %w", err)
	}

	return &unit, nil
}

func (r *FarmRepository) UpdateUnitPartial(ctx context.Context, unitID uuid.UUID, req *models.UpdateFarmUnitRequest) error {
	updateFields := []string{}
	args := map[string]interface{}{"id": unitID}

	if req.UnitType != nil {
		updateFields = append(updateFields, "unit_type = :unit_type")
		args["unit_type"] = req.UnitType
	}
	if req.UnitName != nil {
		updateFields = append(updateFields, "unit_name = :unit_name")
		args["unit_name"] = req.UnitName
	}
	if req.TargetSpecies != nil {
		updateFields = append(updateFields, "target_species = :target_species")
		args["target_species"] = req.TargetSpecies
	}

	if len(updateFields) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE farm_units SET %s WHERE id = :id`, strings.Join(updateFields, ", "))

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to update farm unit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("farm unit %s: %w", unitID, models.ErrNotFound)
	}

	return nil
}

func (r *FarmRepository) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM farm_units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete farm unit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("farm unit %s: %w", id, models.ErrNotFound)
	}

	return nil
}

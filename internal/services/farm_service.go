package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
)

// FarmService manages farms and their units. Farmers only see their own
// farms; admins see everything. A cross-owner lookup reports NotFound rather
// than Forbidden so farm IDs leak nothing about other accounts.
type FarmService struct {
	farmRepo *repository.FarmRepository
}

func NewFarmService(farmRepo *repository.FarmRepository) *FarmService {
	return &FarmService{farmRepo: farmRepo}
}

func (s *FarmService) CreateFarm(ctx context.Context, caller models.Identity, req *models.CreateFarmRequest) (*models.Farm, error) {
	if !req.FarmType.Valid() {
		return nil, fmt.Errorf("invalid farm_type %q: %w", req.FarmType, models.ErrValidation)
	}
	if err := validateAreaSize(req.AreaSize); err != nil {
		return nil, err
	}

	farm := &models.Farm{
		OwnerID:    caller.UserID,
		FarmName:   req.FarmName,
		Address:    req.Address,
		AreaSize:   req.AreaSize,
		FarmType:   req.FarmType,
		FarmStatus: models.FarmStatusActive,
	}

	if err := s.farmRepo.Create(farm); err != nil {
		return nil, err
	}

	slog.Info("farm created", "farm_id", farm.ID, "owner_id", farm.OwnerID)
	farm.Units = []models.FarmUnit{}
	return farm, nil
}

func (s *FarmService) GetFarm(ctx context.Context, caller models.Identity, id uuid.UUID) (*models.Farm, error) {
	farm, err := s.farmRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeFarm(caller, farm); err != nil {
		return nil, err
	}
	return farm, nil
}

func (s *FarmService) ListFarms(ctx context.Context, caller models.Identity) (*models.FarmListResponse, error) {
	farms, err := s.farmRepo.GetByOwnerID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return &models.FarmListResponse{Farms: farms, Total: len(farms)}, nil
}

func (s *FarmService) UpdateFarm(ctx context.Context, caller models.Identity, id uuid.UUID, req *models.UpdateFarmRequest) (*models.Farm, error) {
	if req.FarmType != nil && !req.FarmType.Valid() {
		return nil, fmt.Errorf("invalid farm_type %q: %w", *req.FarmType, models.ErrValidation)
	}
	if req.FarmStatus != nil && !req.FarmStatus.Valid() {
		return nil, fmt.Errorf("invalid farm_status %q: %w", *req.FarmStatus, models.ErrValidation)
	}
	if err := validateAreaSize(req.AreaSize); err != nil {
		return nil, err
	}

	farm, err := s.farmRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeFarm(caller, farm); err != nil {
		return nil, err
	}

	if err := s.farmRepo.UpdatePartial(ctx, id, req); err != nil {
		return nil, err
	}

	return s.farmRepo.GetByID(ctx, id)
}

func (s *FarmService) DeleteFarm(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	farm, err := s.farmRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeFarm(caller, farm); err != nil {
		return err
	}

	if err := s.farmRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("farm deleted", "farm_id", id, "deleted_by", caller.UserID)
	return nil
}

func (s *FarmService) CreateUnit(ctx context.Context, caller models.Identity, req *models.CreateFarmUnitRequest) (*models.FarmUnit, error) {
	if !req.UnitType.Valid() {
		return nil, fmt.Errorf("invalid unit_type %q: %w", req.UnitType, models.ErrValidation)
	}
	if !req.TargetSpecies.Valid() {
		return nil, fmt.Errorf("invalid target_species %q: %w", req.TargetSpecies, models.ErrValidation)
	}

	farm, err := s.farmRepo.GetByID(ctx, req.FarmID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeFarm(caller, farm); err != nil {
		return nil, err
	}

	unit := &models.FarmUnit{
		FarmID:        req.FarmID,
		UnitType:      req.UnitType,
		UnitName:      req.UnitName,
		TargetSpecies: req.TargetSpecies,
	}

	if err := s.farmRepo.CreateUnit(unit); err != nil {
		return nil, err
	}

	return unit, nil
}

func (s *FarmService) GetUnit(ctx context.Context, caller models.Identity, id uuid.UUID) (*models.FarmUnit, error) {
	unit, err := s.farmRepo.GetUnitByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeUnit(ctx, caller, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *FarmService) UpdateUnit(ctx context.Context, caller models.Identity, id uuid.UUID, req *models.UpdateFarmUnitRequest) (*models.FarmUnit, error) {
	if req.UnitType != nil && !req.UnitType.Valid() {
		return nil, fmt.Errorf("invalid unit_type %q: %w", *req.UnitType, models.ErrValidation)
	}
	if req.TargetSpecies != nil && !req.TargetSpecies.Valid() {
		return nil, fmt.Errorf("invalid target_species %q: %w", *req.TargetSpecies, models.ErrValidation)
	}

	unit, err := s.farmRepo.GetUnitByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeUnit(ctx, caller, unit); err != nil {
		return nil, err
	}

	if err := s.farmRepo.UpdateUnitPartial(ctx, id, req); err != nil {
		return nil, err
	}

	return s.farmRepo.GetUnitByID(ctx, id)
}

func (s *FarmService) DeleteUnit(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	unit, err := s.farmRepo.GetUnitByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorizeUnit(ctx, caller, unit); err != nil {
		return err
	}
	return s.farmRepo.DeleteUnit(ctx, id)
}

// validateAreaSize accepts an absent area but rejects zero or negative values.
func validateAreaSize(area *float64) error {
	if area != nil && *area <= 0 {
		return fmt.Errorf("area_size must be greater than 0: %w", models.ErrValidation)
	}
	return nil
}

func (s *FarmService) authorizeFarm(caller models.Identity, farm *models.Farm) error {
	if caller.IsAdmin() || farm.OwnerID == caller.UserID {
		return nil
	}
	return fmt.Errorf("farm %s: %w", farm.ID, models.ErrNotFound)
}

// authorizeUnit resolves the unit's farm and applies the farm ownership rule.
func (s *FarmService) authorizeUnit(ctx context.Context, caller models.Identity, unit *models.FarmUnit) (*models.Farm, error) {
	farm, err := s.farmRepo.GetByID(ctx, unit.FarmID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && farm.OwnerID != caller.UserID {
		return nil, fmt.Errorf("unit %s: %w", unit.ID, models.ErrNotFound)
	}
	return farm, nil
}

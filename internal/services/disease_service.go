package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
)

// DiseaseService maintains the disease and symptom catalogue. Writes are
// admin-only, which the transport layer enforces; this layer validates the
// payloads and keeps disease-symptom links consistent.
type DiseaseService struct {
	diseaseRepo *repository.DiseaseRepository
}

func NewDiseaseService(diseaseRepo *repository.DiseaseRepository) *DiseaseService {
	return &DiseaseService{diseaseRepo: diseaseRepo}
}

func (s *DiseaseService) CreateDisease(ctx context.Context, req *models.CreateDiseaseRequest) (*models.Disease, error) {
	if !req.TargetSpecies.Valid() {
		return nil, fmt.Errorf("invalid target_species %q: %w", req.TargetSpecies, models.ErrValidation)
	}
	if req.SeverityLevel != "" && !req.SeverityLevel.Valid() {
		return nil, fmt.Errorf("invalid severity_level %q: %w", req.SeverityLevel, models.ErrValidation)
	}

	symptomIDs := dedupeIDs(req.SymptomIDs)
	if err := s.validateSymptomIDs(ctx, symptomIDs); err != nil {
		return nil, err
	}

	disease := &models.Disease{
		DiseaseName:   req.DiseaseName,
		TargetSpecies: req.TargetSpecies,
		Description:   req.Description,
		Contagious:    req.Contagious,
		SeverityLevel: req.SeverityLevel,
	}

	tx, err := s.diseaseRepo.BeginTransaction()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.diseaseRepo.CreateTx(tx, disease); err != nil {
		return nil, err
	}
	if len(symptomIDs) > 0 {
		if err := s.diseaseRepo.ReplaceSymptomsTx(tx, disease.ID, symptomIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit disease creation: %w", err)
	}

	slog.Info("disease created", "disease_id", disease.ID, "name", disease.DiseaseName)
	return s.diseaseRepo.GetByID(ctx, disease.ID)
}

func (s *DiseaseService) GetDisease(ctx context.Context, id uuid.UUID) (*models.Disease, error) {
	return s.diseaseRepo.GetByID(ctx, id)
}

func (s *DiseaseService) ListDiseases(ctx context.Context, skip, limit int) (*models.DiseaseListResponse, error) {
	diseases, err := s.diseaseRepo.GetAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return &models.DiseaseListResponse{Diseases: diseases, Total: len(diseases)}, nil
}

// UpdateDisease applies a partial update. A non-nil SymptomIDs replaces the
// disease's symptom set wholesale, in the same transaction as the row update.
func (s *DiseaseService) UpdateDisease(ctx context.Context, id uuid.UUID, req *models.UpdateDiseaseRequest) (*models.Disease, error) {
	if req.TargetSpecies != nil && !req.TargetSpecies.Valid() {
		return nil, fmt.Errorf("invalid target_species %q: %w", *req.TargetSpecies, models.ErrValidation)
	}
	if req.SeverityLevel != nil && !req.SeverityLevel.Valid() {
		return nil, fmt.Errorf("invalid severity_level %q: %w", *req.SeverityLevel, models.ErrValidation)
	}

	var symptomIDs []uuid.UUID
	if req.SymptomIDs != nil {
		symptomIDs = dedupeIDs(req.SymptomIDs)
		if err := s.validateSymptomIDs(ctx, symptomIDs); err != nil {
			return nil, err
		}
	}

	tx, err := s.diseaseRepo.BeginTransaction()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.diseaseRepo.UpdatePartialTx(tx, id, req); err != nil {
		return nil, err
	}
	if req.SymptomIDs != nil {
		if err := s.diseaseRepo.ReplaceSymptomsTx(tx, id, symptomIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit disease update: %w", err)
	}

	return s.diseaseRepo.GetByID(ctx, id)
}

func (s *DiseaseService) DeleteDisease(ctx context.Context, id uuid.UUID) error {
	if err := s.diseaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("disease deleted", "disease_id", id)
	return nil
}

func (s *DiseaseService) CreateSymptom(ctx context.Context, req *models.CreateSymptomRequest) (*models.Symptom, error) {
	if !req.TargetSpecies.Valid() {
		return nil, fmt.Errorf("invalid target_species %q: %w", req.TargetSpecies, models.ErrValidation)
	}

	symptom := &models.Symptom{
		SymptomName:        req.SymptomName,
		SymptomDescription: req.SymptomDescription,
		TargetSpecies:      req.TargetSpecies,
	}
	if err := s.diseaseRepo.CreateSymptom(symptom); err != nil {
		return nil, err
	}
	return symptom, nil
}

func (s *DiseaseService) GetSymptom(ctx context.Context, id uuid.UUID) (*models.Symptom, error) {
	return s.diseaseRepo.GetSymptomByID(ctx, id)
}

func (s *DiseaseService) ListSymptoms(ctx context.Context, skip, limit int) ([]models.Symptom, error) {
	return s.diseaseRepo.GetAllSymptoms(ctx, skip, limit)
}

func (s *DiseaseService) UpdateSymptom(ctx context.Context, id uuid.UUID, req *models.UpdateSymptomRequest) (*models.Symptom, error) {
	if req.TargetSpecies != nil && !req.TargetSpecies.Valid() {
		return nil, fmt.Errorf("invalid target_species %q: %w", *req.TargetSpecies, models.ErrValidation)
	}
	if err := s.diseaseRepo.UpdateSymptomPartial(ctx, id, req); err != nil {
		return nil, err
	}
	return s.diseaseRepo.GetSymptomByID(ctx, id)
}

func (s *DiseaseService) DeleteSymptom(ctx context.Context, id uuid.UUID) error {
	return s.diseaseRepo.DeleteSymptom(ctx, id)
}

// validateSymptomIDs rejects references to symptoms that do not exist. A bad
// ID fails the whole operation with not-found, same as the FK path would.
func (s *DiseaseService) validateSymptomIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.diseaseRepo.CountSymptoms(ctx, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return fmt.Errorf("one or more symptom_ids do not exist: %w", models.ErrNotFound)
	}
	return nil
}

// dedupeIDs collapses duplicate IDs while preserving first-seen order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

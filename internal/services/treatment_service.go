package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
)

// TreatmentService manages the treatment catalogue and disease-treatment
// links. Like diseases, all writes are admin-only.
type TreatmentService struct {
	treatmentRepo *repository.TreatmentRepository
	diseaseRepo   *repository.DiseaseRepository
}

func NewTreatmentService(treatmentRepo *repository.TreatmentRepository, diseaseRepo *repository.DiseaseRepository) *TreatmentService {
	return &TreatmentService{
		treatmentRepo: treatmentRepo,
		diseaseRepo:   diseaseRepo,
	}
}

func (s *TreatmentService) CreateTreatment(ctx context.Context, req *models.CreateTreatmentRequest) (*models.Treatment, error) {
	if !req.ApplicationMethod.Valid() {
		return nil, fmt.Errorf("invalid application_method %q: %w", req.ApplicationMethod, models.ErrValidation)
	}
	if req.DurationDays != nil && *req.DurationDays <= 0 {
		return nil, fmt.Errorf("duration_days must be positive: %w", models.ErrValidation)
	}

	treatment := &models.Treatment{
		TreatmentName:     req.TreatmentName,
		MedicationName:    req.MedicationName,
		ApplicationMethod: req.ApplicationMethod,
		DosageText:        req.DosageText,
		DurationDays:      req.DurationDays,
		Precaution:        req.Precaution,
		AlternativesNote:  req.AlternativesNote,
	}

	if err := s.treatmentRepo.Create(treatment); err != nil {
		return nil, err
	}
	return treatment, nil
}

func (s *TreatmentService) GetTreatment(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	return s.treatmentRepo.GetByID(ctx, id)
}

func (s *TreatmentService) ListTreatments(ctx context.Context, skip, limit int) (*models.TreatmentListResponse, error) {
	treatments, err := s.treatmentRepo.GetAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return &models.TreatmentListResponse{Treatments: treatments, Total: len(treatments)}, nil
}

func (s *TreatmentService) UpdateTreatment(ctx context.Context, id uuid.UUID, req *models.UpdateTreatmentRequest) (*models.Treatment, error) {
	if req.ApplicationMethod != nil && !req.ApplicationMethod.Valid() {
		return nil, fmt.Errorf("invalid application_method %q: %w", *req.ApplicationMethod, models.ErrValidation)
	}
	if req.DurationDays != nil && *req.DurationDays <= 0 {
		return nil, fmt.Errorf("duration_days must be positive: %w", models.ErrValidation)
	}

	if err := s.treatmentRepo.UpdatePartial(ctx, id, req); err != nil {
		return nil, err
	}
	return s.treatmentRepo.GetByID(ctx, id)
}

func (s *TreatmentService) DeleteTreatment(ctx context.Context, id uuid.UUID) error {
	return s.treatmentRepo.Delete(ctx, id)
}

// LinkTreatment attaches a treatment to a disease. Both sides must exist and
// a pair can only be linked once.
func (s *TreatmentService) LinkTreatment(ctx context.Context, diseaseID uuid.UUID, req *models.LinkTreatmentRequest) (*models.DiseaseTreatment, error) {
	if _, err := s.diseaseRepo.GetByID(ctx, diseaseID); err != nil {
		return nil, err
	}
	if _, err := s.treatmentRepo.GetByID(ctx, req.TreatmentID); err != nil {
		return nil, err
	}

	link := &models.DiseaseTreatment{
		DiseaseID:          diseaseID,
		TreatmentID:        req.TreatmentID,
		EffectivenessNotes: req.EffectivenessNotes,
		IsPrimaryTreatment: req.IsPrimaryTreatment,
	}
	if err := s.treatmentRepo.LinkToDisease(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *TreatmentService) ListDiseaseTreatments(ctx context.Context, diseaseID uuid.UUID) ([]models.DiseaseTreatment, error) {
	if _, err := s.diseaseRepo.GetByID(ctx, diseaseID); err != nil {
		return nil, err
	}
	return s.treatmentRepo.GetByDiseaseID(ctx, diseaseID)
}

func (s *TreatmentService) UnlinkTreatment(ctx context.Context, diseaseID, treatmentID uuid.UUID) error {
	return s.treatmentRepo.UnlinkFromDisease(ctx, diseaseID, treatmentID)
}

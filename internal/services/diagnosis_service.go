package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/ai"
	"github.com/Ibtida01/Shobarkhamar/internal/config"
	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
	"github.com/Ibtida01/Shobarkhamar/internal/storage"
)

// DiagnosisService runs the disease diagnosis workflow: a farmer opens a case
// against one of their farms, attaches images, asks the classifier for
// predictions, and an admin eventually records the final disease. Cases are
// only visible to their owner and to admins.
type DiagnosisService struct {
	diagnosisRepo *repository.DiagnosisRepository
	farmRepo      *repository.FarmRepository
	diseaseRepo   *repository.DiseaseRepository
	store         storage.Storage
	classifier    ai.Classifier
	notifier      *NotificationService
	uploadCfg     config.UploadConfig
}

func NewDiagnosisService(
	diagnosisRepo *repository.DiagnosisRepository,
	farmRepo *repository.FarmRepository,
	diseaseRepo *repository.DiseaseRepository,
	store storage.Storage,
	classifier ai.Classifier,
	notifier *NotificationService,
	uploadCfg config.UploadConfig,
) *DiagnosisService {
	return &DiagnosisService{
		diagnosisRepo: diagnosisRepo,
		farmRepo:      farmRepo,
		diseaseRepo:   diseaseRepo,
		store:         store,
		classifier:    classifier,
		notifier:      notifier,
		uploadCfg:     uploadCfg,
	}
}

// OpenDiagnosis creates a new case in status open. The farm must belong to
// the caller and a unit, when given, must belong to that farm.
func (s *DiagnosisService) OpenDiagnosis(ctx context.Context, caller models.Identity, req *models.CreateDiagnosisRequest) (*models.Diagnosis, error) {
	if !req.TargetSpecies.Valid() {
		return nil, fmt.Errorf("invalid target_species %q: %w", req.TargetSpecies, models.ErrValidation)
	}

	farm, err := s.farmRepo.GetByID(ctx, req.FarmID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && farm.OwnerID != caller.UserID {
		return nil, fmt.Errorf("farm %s: %w", req.FarmID, models.ErrNotFound)
	}

	if req.UnitID != nil {
		unit, err := s.farmRepo.GetUnitByID(ctx, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if unit.FarmID != req.FarmID {
			return nil, fmt.Errorf("unit %s does not belong to farm %s: %w", *req.UnitID, req.FarmID, models.ErrValidation)
		}
	}

	symptomIDs := dedupeIDs(req.SymptomIDs)
	if err := s.validateSymptoms(ctx, symptomIDs); err != nil {
		return nil, err
	}

	diagnosis := &models.Diagnosis{
		UserID:        caller.UserID,
		FarmID:        req.FarmID,
		UnitID:        req.UnitID,
		TargetSpecies: req.TargetSpecies,
		SymptomsText:  req.SymptomsText,
	}

	tx, err := s.diagnosisRepo.BeginTransaction()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.diagnosisRepo.CreateTx(tx, diagnosis); err != nil {
		return nil, err
	}
	if len(symptomIDs) > 0 {
		if err := s.diagnosisRepo.ReplaceSymptomsTx(tx, diagnosis.ID, symptomIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit diagnosis creation: %w", err)
	}

	slog.Info("diagnosis opened", "diagnosis_id", diagnosis.ID, "farm_id", diagnosis.FarmID, "user_id", diagnosis.UserID)
	return s.diagnosisRepo.GetByID(ctx, diagnosis.ID, repository.HydrateAll)
}

func (s *DiagnosisService) GetDiagnosis(ctx context.Context, caller models.Identity, id uuid.UUID) (*models.Diagnosis, error) {
	return s.authorize(ctx, caller, id, repository.HydrateAll)
}

func (s *DiagnosisService) ListDiagnoses(ctx context.Context, caller models.Identity, skip, limit int) (*models.DiagnosisListResponse, error) {
	diagnoses, err := s.diagnosisRepo.GetByUserID(ctx, caller.UserID, skip, limit)
	if err != nil {
		return nil, err
	}
	return &models.DiagnosisListResponse{Diagnoses: diagnoses, Total: len(diagnoses)}, nil
}

// UpdateDiagnosis applies a partial update. Settling a case, that is moving
// it to resolved with a final disease, triggers a notification to its owner.
func (s *DiagnosisService) UpdateDiagnosis(ctx context.Context, caller models.Identity, id uuid.UUID, req *models.UpdateDiagnosisRequest) (*models.Diagnosis, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q: %w", *req.Status, models.ErrValidation)
	}

	diagnosis, err := s.authorize(ctx, caller, id, repository.HydrationLevel{})
	if err != nil {
		return nil, err
	}

	if req.FinalDiseaseID != nil {
		if _, err := s.diseaseRepo.GetByID(ctx, *req.FinalDiseaseID); err != nil {
			return nil, err
		}
	}

	var symptomIDs []uuid.UUID
	if req.SymptomIDs != nil {
		symptomIDs = dedupeIDs(req.SymptomIDs)
		if err := s.validateSymptoms(ctx, symptomIDs); err != nil {
			return nil, err
		}
	}

	tx, err := s.diagnosisRepo.BeginTransaction()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.diagnosisRepo.UpdatePartialTx(tx, id, req); err != nil {
		return nil, err
	}
	if req.SymptomIDs != nil {
		if err := s.diagnosisRepo.ReplaceSymptomsTx(tx, id, symptomIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit diagnosis update: %w", err)
	}

	updated, err := s.diagnosisRepo.GetByID(ctx, id, repository.HydrateAll)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status == models.DiagnosisResolved && diagnosis.Status != models.DiagnosisResolved {
		s.notifyResolved(ctx, updated)
	}

	return updated, nil
}

func (s *DiagnosisService) DeleteDiagnosis(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	if _, err := s.authorize(ctx, caller, id, repository.HydrationLevel{}); err != nil {
		return err
	}
	return s.diagnosisRepo.Delete(ctx, id)
}

// AttachImage stores an uploaded image and records it against the case. The
// stored name is <diagnosisID>_<unixnano><ext> so uploads never collide.
func (s *DiagnosisService) AttachImage(ctx context.Context, caller models.Identity, diagnosisID uuid.UUID, fileHeader *multipart.FileHeader) (*models.ImageUploadResponse, error) {
	if _, err := s.authorize(ctx, caller, diagnosisID, repository.HydrationLevel{}); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !s.extAllowed(ext) {
		return nil, fmt.Errorf("file extension %q not allowed: %w", ext, models.ErrValidation)
	}
	if s.uploadCfg.MaxSize > 0 && fileHeader.Size > s.uploadCfg.MaxSize {
		return nil, fmt.Errorf("file exceeds %d bytes: %w", s.uploadCfg.MaxSize, models.ErrValidation)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fileName := fmt.Sprintf("%s_%d%s", diagnosisID, time.Now().UnixNano(), ext)
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := s.store.Save(ctx, fileName, contentType, file, fileHeader.Size)
	if err != nil {
		return nil, err
	}

	image := &models.DiagnosisImage{
		DiagnosisID: diagnosisID,
		ImageURL:    url,
	}
	if err := s.diagnosisRepo.CreateImage(ctx, image); err != nil {
		// Keep storage and database consistent when the insert fails.
		if delErr := s.store.Delete(ctx, fileName); delErr != nil {
			slog.Warn("failed to clean up orphaned upload", "file", fileName, "error", delErr)
		}
		return nil, err
	}

	slog.Info("diagnosis image attached", "diagnosis_id", diagnosisID, "image_id", image.ID)
	return &models.ImageUploadResponse{
		DiagnosisImageID: image.ID,
		ImageURL:         image.ImageURL,
		DiagnosisID:      diagnosisID,
		CapturedAt:       image.CapturedAt,
	}, nil
}

// Predict sends an attached image to the classifier and records the result
// as an immutable prediction. The case moves to in_review on its first
// prediction.
func (s *DiagnosisService) Predict(ctx context.Context, caller models.Identity, diagnosisID, imageID uuid.UUID) (*models.Prediction, error) {
	diagnosis, err := s.authorize(ctx, caller, diagnosisID, repository.HydrationLevel{})
	if err != nil {
		return nil, err
	}

	image, err := s.diagnosisRepo.GetImageByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image.DiagnosisID != diagnosisID {
		return nil, fmt.Errorf("diagnosis image %s: %w", imageID, models.ErrNotFound)
	}

	symptomsText := ""
	if diagnosis.SymptomsText != nil {
		symptomsText = *diagnosis.SymptomsText
	}

	result, err := s.classifier.Classify(ctx, ai.ClassifyRequest{
		ImageURL:      image.ImageURL,
		TargetSpecies: diagnosis.TargetSpecies,
		SymptomsText:  symptomsText,
	})
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	disease, err := s.diseaseRepo.GetByName(ctx, result.DiseaseName)
	if err != nil {
		return nil, fmt.Errorf("classifier label %q has no catalogue entry: %w", result.DiseaseName, err)
	}

	prediction := &models.Prediction{
		DiagnosisID:        diagnosisID,
		DiagnosisImageID:   imageID,
		PredictedDiseaseID: disease.ID,
		Confidence:         result.Confidence,
	}
	if err := s.diagnosisRepo.CreatePrediction(ctx, prediction); err != nil {
		return nil, err
	}
	prediction.PredictedDisease = disease

	if diagnosis.Status == models.DiagnosisOpen {
		status := models.DiagnosisInReview
		if err := s.transitionStatus(diagnosisID, status); err != nil {
			slog.Warn("failed to move diagnosis to in_review", "diagnosis_id", diagnosisID, "error", err)
		}
	}

	slog.Info("prediction recorded",
		"diagnosis_id", diagnosisID,
		"disease", disease.DiseaseName,
		"confidence", result.Confidence,
	)
	return prediction, nil
}

func (s *DiagnosisService) ListPredictions(ctx context.Context, caller models.Identity, diagnosisID uuid.UUID) (*models.PredictionListResponse, error) {
	if _, err := s.authorize(ctx, caller, diagnosisID, repository.HydrationLevel{}); err != nil {
		return nil, err
	}
	predictions, err := s.diagnosisRepo.GetPredictionsByDiagnosisID(ctx, diagnosisID)
	if err != nil {
		return nil, err
	}
	return &models.PredictionListResponse{Predictions: predictions, Total: len(predictions)}, nil
}

// authorize fetches a diagnosis and enforces the owner-or-admin rule. A
// cross-owner hit reports NotFound so case IDs stay private.
func (s *DiagnosisService) authorize(ctx context.Context, caller models.Identity, id uuid.UUID, include repository.HydrationLevel) (*models.Diagnosis, error) {
	diagnosis, err := s.diagnosisRepo.GetByID(ctx, id, include)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && diagnosis.UserID != caller.UserID {
		return nil, fmt.Errorf("diagnosis %s: %w", id, models.ErrNotFound)
	}
	return diagnosis, nil
}

func (s *DiagnosisService) validateSymptoms(ctx context.Context, ids []uuid.UUID) error {
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

func (s *DiagnosisService) transitionStatus(id uuid.UUID, status models.DiagnosisStatus) error {
	tx, err := s.diagnosisRepo.BeginTransaction()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.diagnosisRepo.UpdatePartialTx(tx, id, &models.UpdateDiagnosisRequest{Status: &status}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *DiagnosisService) notifyResolved(ctx context.Context, diagnosis *models.Diagnosis) {
	title := "Diagnosis resolved"
	body := "Your diagnosis case has been resolved."
	if diagnosis.FinalDisease != nil {
		body = fmt.Sprintf("Your diagnosis case has been resolved: %s.", diagnosis.FinalDisease.DiseaseName)
	}
	diagnosisID := diagnosis.ID
	if err := s.notifier.Notify(ctx, diagnosis.UserID, &diagnosisID, models.NotificationDiagnosisResult, title, body); err != nil {
		slog.Warn("failed to send resolution notification", "diagnosis_id", diagnosis.ID, "error", err)
	}
}

func (s *DiagnosisService) extAllowed(ext string) bool {
	if ext == "" {
		return false
	}
	for _, allowed := range s.uploadCfg.AllowedExts {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

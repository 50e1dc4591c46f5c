package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/config"
	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
)

func TestDedupeIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.Nil(t, dedupeIDs(nil))
	assert.Nil(t, dedupeIDs([]uuid.UUID{}))

	out := dedupeIDs([]uuid.UUID{a, b, a, c, b, a})
	assert.Equal(t, []uuid.UUID{a, b, c}, out)
}

func TestExtAllowed(t *testing.T) {
	service := &DiagnosisService{
		uploadCfg: config.UploadConfig{
			AllowedExts: []string{".jpg", ".jpeg", ".png"},
		},
	}

	assert.True(t, service.extAllowed(".jpg"))
	assert.True(t, service.extAllowed(".PNG"))
	assert.False(t, service.extAllowed(".gif"))
	assert.False(t, service.extAllowed(""))
	assert.False(t, service.extAllowed("jpg"))
}

func TestValidateSymptomsUnknownIDNotFound(t *testing.T) {
	db := newCatalogueDB(t)
	repo := repository.NewDiseaseRepository(db)
	service := &DiagnosisService{diseaseRepo: repo}
	ctx := context.Background()

	known := &models.Symptom{
		SymptomName:   "white spots",
		TargetSpecies: models.SpeciesFish,
	}
	require.NoError(t, repo.CreateSymptom(known))

	assert.NoError(t, service.validateSymptoms(ctx, []uuid.UUID{known.ID}))

	err := service.validateSymptoms(ctx, []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NotErrorIs(t, err, models.ErrValidation)
}

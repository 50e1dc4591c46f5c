package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

func createDisease(t *testing.T, db *sqlx.DB, name string, symptomIDs []uuid.UUID) *models.Disease {
	t.Helper()

	repo := NewDiseaseRepository(db)
	tx, err := repo.BeginTransaction()
	require.NoError(t, err)
	defer tx.Rollback()

	disease := &models.Disease{
		DiseaseName:   name,
		TargetSpecies: models.SpeciesFish,
	}
	require.NoError(t, repo.CreateTx(tx, disease))
	if len(symptomIDs) > 0 {
		require.NoError(t, repo.ReplaceSymptomsTx(tx, disease.ID, symptomIDs))
	}
	require.NoError(t, tx.Commit())
	return disease
}

func symptomIDs(symptoms []models.Symptom) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(symptoms))
	for _, s := range symptoms {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestReplaceSymptomsSwapsWholeSet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewDiseaseRepository(db)

	s1 := seedSymptom(t, db, "white spots")
	s2 := seedSymptom(t, db, "lethargy")
	s3 := seedSymptom(t, db, "fin erosion")

	disease := createDisease(t, db, "White Spot Disease", []uuid.UUID{s1.ID, s2.ID})

	got, err := repo.GetByID(ctx, disease.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{s1.ID, s2.ID}, symptomIDs(got.Symptoms))

	tx, err := repo.BeginTransaction()
	require.NoError(t, err)
	defer tx.Rollback()
	require.NoError(t, repo.ReplaceSymptomsTx(tx, disease.ID, []uuid.UUID{s2.ID, s3.ID}))
	require.NoError(t, tx.Commit())

	got, err = repo.GetByID(ctx, disease.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{s2.ID, s3.ID}, symptomIDs(got.Symptoms))
}

func TestReplaceSymptomsUnknownSymptomNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewDiseaseRepository(db)

	disease := createDisease(t, db, "Gill Rot", nil)

	tx, err := repo.BeginTransaction()
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.ReplaceSymptomsTx(tx, disease.ID, []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCountSymptoms(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewDiseaseRepository(db)

	s1 := seedSymptom(t, db, "ruffled feathers")
	s2 := seedSymptom(t, db, "reduced appetite")

	count, err := repo.CountSymptoms(ctx, []uuid.UUID{s1.ID, s2.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountSymptoms(ctx, []uuid.UUID{s1.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountSymptoms(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

package services

import (
	"context"
	"testing"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
)

// newCatalogueDB opens an in-memory sqlite database with just the disease
// catalogue tables, enough to back a DiseaseRepository in tests.
func newCatalogueDB(t *testing.T) *sqlx.DB {
	t.Helper()
	sqlx.BindDriver("sqlite", sqlx.QUESTION)

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.SetMaxOpenConns(1)
	for _, stmt := range []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE diseases (
			id TEXT PRIMARY KEY,
			disease_name TEXT NOT NULL UNIQUE,
			target_species TEXT NOT NULL,
			description TEXT,
			contagious BOOLEAN NOT NULL DEFAULT FALSE,
			severity_level TEXT NOT NULL DEFAULT 'medium'
		)`,
		`CREATE TABLE symptoms (
			id TEXT PRIMARY KEY,
			symptom_name TEXT NOT NULL,
			symptom_description TEXT,
			target_species TEXT NOT NULL
		)`,
		`CREATE TABLE disease_symptoms (
			disease_id TEXT NOT NULL REFERENCES diseases(id) ON DELETE CASCADE,
			symptom_id TEXT NOT NULL REFERENCES symptoms(id) ON DELETE CASCADE,
			PRIMARY KEY (disease_id, symptom_id)
		)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return db
}

func TestCreateDiseaseUnknownSymptomNotFound(t *testing.T) {
	db := newCatalogueDB(t)
	service := NewDiseaseService(repository.NewDiseaseRepository(db))

	_, err := service.CreateDisease(context.Background(), &models.CreateDiseaseRequest{
		DiseaseName:   "Gill Rot",
		TargetSpecies: models.SpeciesFish,
		SymptomIDs:    []uuid.UUID{uuid.New()},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NotErrorIs(t, err, models.ErrValidation)
}

func TestUpdateDiseaseUnknownSymptomNotFound(t *testing.T) {
	db := newCatalogueDB(t)
	repo := repository.NewDiseaseRepository(db)
	service := NewDiseaseService(repo)
	ctx := context.Background()

	created, err := service.CreateDisease(ctx, &models.CreateDiseaseRequest{
		DiseaseName:   "White Spot Disease",
		TargetSpecies: models.SpeciesFish,
	})
	require.NoError(t, err)

	_, err = service.UpdateDisease(ctx, created.ID, &models.UpdateDiseaseRequest{
		SymptomIDs: []uuid.UUID{uuid.New()},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// The failed update must not have touched the stored row.
	got, err := service.GetDisease(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Symptoms)
}

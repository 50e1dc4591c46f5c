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

func createDiagnosis(t *testing.T, db *sqlx.DB, userID, farmID uuid.UUID) *models.Diagnosis {
	t.Helper()

	repo := NewDiagnosisRepository(db)
	tx, err := repo.BeginTransaction()
	require.NoError(t, err)
	defer tx.Rollback()

	diagnosis := &models.Diagnosis{
		UserID:        userID,
		FarmID:        farmID,
		TargetSpecies: models.SpeciesFish,
	}
	require.NoError(t, repo.CreateTx(tx, diagnosis))
	require.NoError(t, tx.Commit())
	return diagnosis
}

func TestGetByUserIDScopesHistoryToOwner(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewDiagnosisRepository(db)

	karim := seedUser(t, db, "karim@example.com")
	rahim := seedUser(t, db, "rahim@example.com")
	karimFarm := seedFarm(t, db, karim.ID)
	rahimFarm := seedFarm(t, db, rahim.ID)

	createDiagnosis(t, db, karim.ID, karimFarm.ID)
	createDiagnosis(t, db, karim.ID, karimFarm.ID)
	createDiagnosis(t, db, rahim.ID, rahimFarm.ID)

	history, err := repo.GetByUserID(ctx, karim.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, d := range history {
		assert.Equal(t, karim.ID, d.UserID)
	}

	theirs, err := repo.GetByUserID(ctx, rahim.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, rahim.ID, theirs[0].UserID)
}

func TestGetByUserIDPaginates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewDiagnosisRepository(db)

	user := seedUser(t, db, "pager@example.com")
	farm := seedFarm(t, db, user.ID)
	for i := 0; i < 3; i++ {
		createDiagnosis(t, db, user.ID, farm.ID)
	}

	page, err := repo.GetByUserID(ctx, user.ID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := repo.GetByUserID(ctx, user.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

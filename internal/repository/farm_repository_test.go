package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

func TestDeleteFarmCascadesUnits(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewFarmRepository(db)

	farm := seedFarm(t, db, owner.ID)
	unit := &models.FarmUnit{
		FarmID:        farm.ID,
		UnitType:      models.UnitTypePond,
		UnitName:      "Pond 1",
		TargetSpecies: models.SpeciesFish,
	}
	require.NoError(t, repo.CreateUnit(unit))

	require.NoError(t, repo.Delete(ctx, farm.ID))

	_, err := repo.GetByID(ctx, farm.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.GetUnitByID(ctx, unit.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateUnitUnknownFarmNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewFarmRepository(db)

	unit := &models.FarmUnit{
		FarmID:        uuid.New(),
		UnitType:      models.UnitTypeCoop,
		UnitName:      "Coop 1",
		TargetSpecies: models.SpeciesPoultry,
	}
	err := repo.CreateUnit(unit)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetByOwnerIDFiltersFarms(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewFarmRepository(db)

	owner := seedUser(t, db, "mine@example.com")
	other := seedUser(t, db, "theirs@example.com")
	mine := seedFarm(t, db, owner.ID)
	seedFarm(t, db, other.ID)

	farms, err := repo.GetByOwnerID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, farms, 1)
	assert.Equal(t, mine.ID, farms[0].ID)
}

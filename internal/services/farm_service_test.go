package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

func TestCreateFarmRejectsNonPositiveArea(t *testing.T) {
	service := NewFarmService(nil)
	caller := models.Identity{UserID: uuid.New(), Role: models.RoleFarmer}
	ctx := context.Background()

	for _, area := range []float64{-42.0, 0} {
		_, err := service.CreateFarm(ctx, caller, &models.CreateFarmRequest{
			FarmName: "South Pond",
			FarmType: models.FarmTypeFish,
			AreaSize: &area,
		})
		assert.ErrorIs(t, err, models.ErrValidation, "area %v", area)
	}
}

func TestUpdateFarmRejectsNonPositiveArea(t *testing.T) {
	service := NewFarmService(nil)
	caller := models.Identity{UserID: uuid.New(), Role: models.RoleFarmer}

	zero := 0.0
	_, err := service.UpdateFarm(context.Background(), caller, uuid.New(), &models.UpdateFarmRequest{
		AreaSize: &zero,
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

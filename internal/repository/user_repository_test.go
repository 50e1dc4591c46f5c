package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

func TestCreateUserDuplicateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	first := &models.User{
		Name:         "Karim",
		Email:        "karim@example.com",
		PasswordHash: "hash-one",
	}
	require.NoError(t, repo.CreateUser(first))

	dup := &models.User{
		Name:         "Impostor",
		Email:        "karim@example.com",
		PasswordHash: "hash-two",
	}
	err := repo.CreateUser(dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConflict)

	got, err := repo.GetUserByEmail("karim@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Karim", got.Name)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

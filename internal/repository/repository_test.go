package repository

import (
	"testing"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// testSchema mirrors the postgres migrations in sqlite terms. UUIDs are TEXT
// and the cascades match the production FK rules.
var testSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'farmer',
		phone TEXT,
		address TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE farms (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		farm_name TEXT NOT NULL,
		address TEXT,
		area_size REAL,
		farm_type TEXT NOT NULL,
		farm_status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE farm_units (
		id TEXT PRIMARY KEY,
		farm_id TEXT NOT NULL REFERENCES farms(id) ON DELETE CASCADE,
		unit_type TEXT NOT NULL,
		unit_name TEXT NOT NULL,
		target_species TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
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
	`CREATE TABLE treatments (
		id TEXT PRIMARY KEY,
		treatment_name TEXT NOT NULL,
		medication_name TEXT,
		application_method TEXT NOT NULL,
		dosage_text TEXT,
		duration_days INTEGER,
		precaution TEXT,
		alternatives_note TEXT
	)`,
	`CREATE TABLE disease_treatments (
		disease_id TEXT NOT NULL REFERENCES diseases(id) ON DELETE CASCADE,
		treatment_id TEXT NOT NULL REFERENCES treatments(id) ON DELETE CASCADE,
		effectiveness_notes TEXT,
		is_primary_treatment BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (disease_id, treatment_id)
	)`,
	`CREATE TABLE diagnoses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		farm_id TEXT NOT NULL REFERENCES farms(id) ON DELETE CASCADE,
		unit_id TEXT REFERENCES farm_units(id) ON DELETE SET NULL,
		target_species TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		symptoms_text TEXT,
		final_disease_id TEXT REFERENCES diseases(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE diagnosis_symptoms (
		diagnosis_id TEXT NOT NULL REFERENCES diagnoses(id) ON DELETE CASCADE,
		symptom_id TEXT NOT NULL REFERENCES symptoms(id) ON DELETE CASCADE,
		PRIMARY KEY (diagnosis_id, symptom_id)
	)`,
	`CREATE TABLE diagnosis_images (
		id TEXT PRIMARY KEY,
		diagnosis_id TEXT NOT NULL REFERENCES diagnoses(id) ON DELETE CASCADE,
		image_url TEXT NOT NULL,
		captured_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE predictions (
		id TEXT PRIMARY KEY,
		diagnosis_id TEXT NOT NULL REFERENCES diagnoses(id) ON DELETE CASCADE,
		diagnosis_image_id TEXT NOT NULL REFERENCES diagnosis_images(id) ON DELETE CASCADE,
		predicted_disease_id TEXT NOT NULL REFERENCES diseases(id) ON DELETE CASCADE,
		confidence REAL NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		diagnosis_id TEXT REFERENCES diagnoses(id) ON DELETE SET NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		scheduled_at TIMESTAMP,
		sent_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE feedbacks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		feedback_text TEXT NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		feedback_date TIMESTAMP NOT NULL
	)`,
}

// newTestDB opens an in-memory sqlite database with the production schema.
// A single pooled connection keeps the in-memory database alive and makes
// the foreign_keys pragma stick.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.SetMaxOpenConns(1)
	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	for _, stmt := range testSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return db
}

func seedUser(t *testing.T, db *sqlx.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test Farmer",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, NewUserRepository(db).CreateUser(user))
	return user
}

func seedFarm(t *testing.T, db *sqlx.DB, ownerID uuid.UUID) *models.Farm {
	t.Helper()

	farm := &models.Farm{
		OwnerID:  ownerID,
		FarmName: "Test Farm",
		FarmType: models.FarmTypeFish,
	}
	require.NoError(t, NewFarmRepository(db).Create(farm))
	return farm
}

func seedSymptom(t *testing.T, db *sqlx.DB, name string) *models.Symptom {
	t.Helper()

	symptom := &models.Symptom{
		SymptomName:   name,
		TargetSpecies: models.SpeciesFish,
	}
	require.NoError(t, NewDiseaseRepository(db).CreateSymptom(symptom))
	return symptom
}

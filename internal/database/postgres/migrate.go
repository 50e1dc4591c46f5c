package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate applies the schema. Statements are idempotent so the service can be
// restarted against an existing database. Ownership cascades (farm -> units,
// diagnosis -> images/symptoms/predictions, disease -> joins) are enforced at
// the FK level with ON DELETE CASCADE.
func Migrate(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'farmer',
			phone VARCHAR(30),
			address TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS farms (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			farm_name VARCHAR(200) NOT NULL,
			address TEXT,
			area_size DOUBLE PRECISION,
			farm_type VARCHAR(20) NOT NULL,
			farm_status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS farm_units (
			id UUID PRIMARY KEY,
			farm_id UUID NOT NULL REFERENCES farms(id) ON DELETE CASCADE,
			unit_type VARCHAR(20) NOT NULL,
			unit_name VARCHAR(100) NOT NULL,
			target_species VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS diseases (
			id UUID PRIMARY KEY,
			disease_name VARCHAR(200) NOT NULL UNIQUE,
			target_species VARCHAR(20) NOT NULL,
			description TEXT,
			contagious BOOLEAN NOT NULL DEFAULT FALSE,
			severity_level VARCHAR(20) NOT NULL DEFAULT 'medium'
		)`,
		`CREATE TABLE IF NOT EXISTS symptoms (
			id UUID PRIMARY KEY,
			symptom_name VARCHAR(200) NOT NULL,
			symptom_description TEXT,
			target_species VARCHAR(20) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS disease_symptoms (
			disease_id UUID NOT NULL REFERENCES diseases(id) ON DELETE CASCADE,
			symptom_id UUID NOT NULL REFERENCES symptoms(id) ON DELETE CASCADE,
			PRIMARY KEY (disease_id, symptom_id)
		)`,
		`CREATE TABLE IF NOT EXISTS treatments (
			id UUID PRIMARY KEY,
			treatment_name VARCHAR(200) NOT NULL,
			medication_name VARCHAR(200),
			application_method VARCHAR(20) NOT NULL,
			dosage_text TEXT,
			duration_days INTEGER,
			precaution TEXT,
			alternatives_note TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS disease_treatments (
			disease_id UUID NOT NULL REFERENCES diseases(id) ON DELETE CASCADE,
			treatment_id UUID NOT NULL REFERENCES treatments(id) ON DELETE CASCADE,
			effectiveness_notes TEXT,
			is_primary_treatment BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (disease_id, treatment_id)
		)`,
		`CREATE TABLE IF NOT EXISTS diagnoses (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			farm_id UUID NOT NULL REFERENCES farms(id) ON DELETE CASCADE,
			unit_id UUID REFERENCES farm_units(id) ON DELETE SET NULL,
			target_species VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'open',
			symptoms_text TEXT,
			final_disease_id UUID REFERENCES diseases(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS diagnosis_symptoms (
			diagnosis_id UUID NOT NULL REFERENCES diagnoses(id) ON DELETE CASCADE,
			symptom_id UUID NOT NULL REFERENCES symptoms(id) ON DELETE CASCADE,
			PRIMARY KEY (diagnosis_id, symptom_id)
		)`,
		`CREATE TABLE IF NOT EXISTS diagnosis_images (
			id UUID PRIMARY KEY,
			diagnosis_id UUID NOT NULL REFERENCES diagnoses(id) ON DELETE CASCADE,
			image_url TEXT NOT NULL,
			captured_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS predictions (
			id UUID PRIMARY KEY,
			diagnosis_id UUID NOT NULL REFERENCES diagnoses(id) ON DELETE CASCADE,
			diagnosis_image_id UUID NOT NULL REFERENCES diagnosis_images(id) ON DELETE CASCADE,
			predicted_disease_id UUID NOT NULL REFERENCES diseases(id) ON DELETE CASCADE,
			confidence NUMERIC(5,4) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			diagnosis_id UUID REFERENCES diagnoses(id) ON DELETE SET NULL,
			type VARCHAR(30) NOT NULL,
			title VARCHAR(200) NOT NULL,
			body TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			scheduled_at TIMESTAMPTZ,
			sent_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS feedbacks (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			feedback_text TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			feedback_date TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_farms_owner_id ON farms(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_farm_units_farm_id ON farm_units(farm_id)`,
		`CREATE INDEX IF NOT EXISTS idx_diagnoses_user_id ON diagnoses(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_diagnoses_farm_id ON diagnoses(farm_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

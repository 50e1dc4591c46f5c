package models

import (
	"time"

	"github.com/google/uuid"
)

type FarmType string

const (
	FarmTypeFish    FarmType = "fish"
	FarmTypePoultry FarmType = "poultry"
	FarmTypeMixed   FarmType = "mixed"
)

func (t FarmType) Valid() bool {
	switch t {
	case FarmTypeFish, FarmTypePoultry, FarmTypeMixed:
		return true
	}
	return false
}

type FarmStatus string

const (
	FarmStatusActive    FarmStatus = "active"
	FarmStatusInactive  FarmStatus = "inactive"
	FarmStatusSuspended FarmStatus = "suspended"
)

func (s FarmStatus) Valid() bool {
	switch s {
	case FarmStatusActive, FarmStatusInactive, FarmStatusSuspended:
		return true
	}
	return false
}

type UnitType string

const (
	UnitTypePond UnitType = "pond"
	UnitTypeTank UnitType = "tank"
	UnitTypeCage UnitType = "cage"
	UnitTypeCoop UnitType = "coop"
	UnitTypeShed UnitType = "shed"
)

func (t UnitType) Valid() bool {
	switch t {
	case UnitTypePond, UnitTypeTank, UnitTypeCage, UnitTypeCoop, UnitTypeShed:
		return true
	}
	return false
}

type TargetSpecies string

const (
	SpeciesFish    TargetSpecies = "fish"
	SpeciesPoultry TargetSpecies = "poultry"
)

func (s TargetSpecies) Valid() bool {
	switch s {
	case SpeciesFish, SpeciesPoultry:
		return true
	}
	return false
}

type Farm struct {
	ID         uuid.UUID  `json:"farm_id" db:"id"`
	OwnerID    uuid.UUID  `json:"owner_id" db:"owner_id"`
	FarmName   string     `json:"farm_name" db:"farm_name"`
	Address    *string    `json:"address" db:"address"`
	AreaSize   *float64   `json:"area_size" db:"area_size"`
	FarmType   FarmType   `json:"farm_type" db:"farm_type"`
	FarmStatus FarmStatus `json:"farm_status" db:"farm_status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	Units      []FarmUnit `json:"units"`
}

type FarmUnit struct {
	ID            uuid.UUID     `json:"unit_id" db:"id"`
	FarmID        uuid.UUID     `json:"farm_id" db:"farm_id"`
	UnitType      UnitType      `json:"unit_type" db:"unit_type"`
	UnitName      string        `json:"unit_name" db:"unit_name"`
	TargetSpecies TargetSpecies `json:"target_species" db:"target_species"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

type CreateFarmRequest struct {
	FarmName string   `json:"farm_name" binding:"required"`
	Address  *string  `json:"address"`
	AreaSize *float64 `json:"area_size"`
	FarmType FarmType `json:"farm_type" binding:"required"`
}

type UpdateFarmRequest struct {
	FarmName   *string     `json:"farm_name"`
	Address    *string     `json:"address"`
	AreaSize   *float64    `json:"area_size"`
	FarmType   *FarmType   `json:"farm_type"`
	FarmStatus *FarmStatus `json:"farm_status"`
}

type CreateFarmUnitRequest struct {
	FarmID        uuid.UUID     `json:"farm_id" binding:"required"`
	UnitType      UnitType      `json:"unit_type" binding:"required"`
	UnitName      string        `json:"unit_name" binding:"required"`
	TargetSpecies TargetSpecies `json:"target_species" binding:"required"`
}

type UpdateFarmUnitRequest struct {
	UnitType      *UnitType      `json:"unit_type"`
	UnitName      *string        `json:"unit_name"`
	TargetSpecies *TargetSpecies `json:"target_species"`
}

type FarmListResponse struct {
	Farms []Farm `json:"farms"`
	Total int    `json:"total"`
}

// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/branchledger/backend/internal/application/adapter"
)

// BulkCorrectionModel is the audit row written for each bulk historical
// update run.
type BulkCorrectionModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ActorID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	UpdatedCount     int            `gorm:"not null"`
	AffectedDates    pq.StringArray `gorm:"type:text[]"`
	AffectedAccounts pq.StringArray `gorm:"type:text[]"`
	CreatedAt        time.Time      `gorm:"not null"`
}

// TableName returns the table name for the BulkCorrectionModel.
func (BulkCorrectionModel) TableName() string {
	return "bulk_corrections"
}

// BulkCorrectionFromAdapter creates a BulkCorrectionModel from the adapter record.
func BulkCorrectionFromAdapter(correction *adapter.BulkCorrection) *BulkCorrectionModel {
	accounts := make(pq.StringArray, len(correction.AffectedAccounts))
	for i, id := range correction.AffectedAccounts {
		accounts[i] = id.String()
	}

	return &BulkCorrectionModel{
		ID:               correction.ID,
		ActorID:          correction.ActorID,
		UpdatedCount:     correction.UpdatedCount,
		AffectedDates:    pq.StringArray(correction.AffectedDates),
		AffectedAccounts: accounts,
		CreatedAt:        correction.CreatedAt,
	}
}

package repositories

import (
	"apptnu_backend/internal/models"

	"gorm.io/gorm"
)

// WebhookEventRepository is the gateway notification ledger. Every verified
// callback is recorded; Applied marks the ones that changed state.
type WebhookEventRepository interface {
	Create(tx *gorm.DB, event *models.WebhookEvent) error
	HasAppliedTransaction(tx *gorm.DB, transactionID string) (bool, error)
}

type WebhookEventRepositoryImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &WebhookEventRepositoryImpl{db: db}
}

func (r *WebhookEventRepositoryImpl) Create(tx *gorm.DB, event *models.WebhookEvent) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(event).Error
}

func (r *WebhookEventRepositoryImpl) HasAppliedTransaction(tx *gorm.DB, transactionID string) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	if transactionID == "" {
		return false, nil
	}

	var count int64
	err := tx.Model(&models.WebhookEvent{}).
		Where("transaction_id = ? AND applied = ?", transactionID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

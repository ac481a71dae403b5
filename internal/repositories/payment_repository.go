package repositories

import (
	"errors"
	"time"

	"apptnu_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(payment *models.Payment) error
	FindByID(id string) (*models.Payment, error)
	FindByOrderID(orderID string) (*models.Payment, error)
	// FindByOrderIDForUpdate takes a row lock inside the given transaction so
	// concurrent webhook deliveries for the same order serialize.
	FindByOrderIDForUpdate(tx *gorm.DB, orderID string) (*models.Payment, error)
	FindPaidByIDAndUser(paymentID, userID string) (*models.Payment, error)
	UpdateStatus(tx *gorm.DB, paymentID string, updates map[string]interface{}) error
	ListByUser(userID string) ([]models.Payment, error)
	ListAll() ([]models.Payment, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "midtrans_order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByOrderIDForUpdate(tx *gorm.DB, orderID string) (*models.Payment, error) {
	q := tx
	// sqlite has no row locks; the clause is a syntax error there.
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var payment models.Payment
	err := q.First(&payment, "midtrans_order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindPaidByIDAndUser is the receipt precondition: the payment must belong
// to the user and already be settled.
func (r *PaymentRepositoryImpl) FindPaidByIDAndUser(paymentID, userID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.
		Where("id = ? AND user_id = ? AND status = ?", paymentID, userID, models.PaymentStatusPaid).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) UpdateStatus(tx *gorm.DB, paymentID string, updates map[string]interface{}) error {
	if tx == nil {
		tx = r.db
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}

	result := tx.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) ListByUser(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) ListAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Preload("User").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

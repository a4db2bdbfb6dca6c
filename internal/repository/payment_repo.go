package repository

import (
	"time"

	"gorm.io/gorm"

	"comgatepay/internal/models"
)

// PaymentRepository handles payment record database operations.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create persists a new payment record. Called right after the gateway
// assigns a transaction id, before the payer is redirected.
func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// FindByTransactionID returns a payment by its gateway transaction id.
func (r *PaymentRepository) FindByTransactionID(transID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("transaction_id = ?", transID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindPending returns payments still awaiting a terminal state, oldest
// first, for the status poller.
func (r *PaymentRepository) FindPending(limit int) ([]models.Payment, error) {
	if limit <= 0 {
		limit = 100
	}
	var payments []models.Payment
	err := r.db.
		Where("state IN ?", []string{"pending", "authorized"}).
		Order("created_at ASC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// UpdateState records the outcome of a status query.
func (r *PaymentRepository) UpdateState(transID, state, method string, completedAt *time.Time) error {
	updates := map[string]interface{}{
		"state":  state,
		"method": method,
	}
	if completedAt != nil {
		updates["completed_at"] = completedAt
	}
	return r.db.Model(&models.Payment{}).
		Where("transaction_id = ?", transID).
		Updates(updates).Error
}

// FindAll returns payments with pagination and search over reference id
// and payer email.
func (r *PaymentRepository) FindAll(limit, page int, query string) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.Model(&models.Payment{})
	if query != "" {
		search := "%" + query + "%"
		db = db.Where("reference_id LIKE ? OR payer_email LIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	if err := db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

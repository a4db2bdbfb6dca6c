package models

import "time"

// Payment is the caller-side record of one gateway transaction. The
// gateway facade owns no state; this row is what survives between the
// create call and the payer coming back.
type Payment struct {
	ID             uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TransactionID  string     `gorm:"column:transaction_id;size:64;uniqueIndex" json:"transaction_id"`
	ReferenceID    string     `gorm:"column:reference_id;size:128;index" json:"reference_id"`
	SpecificSymbol string     `gorm:"column:specific_symbol;size:64" json:"specific_symbol"`
	VariableSymbol string     `gorm:"column:variable_symbol;size:64" json:"variable_symbol"`
	PayerName      string     `gorm:"column:payer_name;size:255" json:"payer_name"`
	PayerEmail     string     `gorm:"column:payer_email;size:255" json:"payer_email"`
	Description    string     `gorm:"column:description;size:255" json:"description"`
	AmountCents    int64      `gorm:"column:amount_cents" json:"amount_cents"`
	State          string     `gorm:"column:state;size:32;index" json:"state"`
	Method         string     `gorm:"column:method;size:64" json:"method"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

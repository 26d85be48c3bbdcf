package domain

import (
	"github.com/shopspring/decimal"
)

// Expense Model
//
// The group and payer are fixed at creation; there is no reassignment
// operation. Splits are owned exclusively by their expense: deleting the
// expense deletes every split attached to it.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                        // Primary key
	GroupID     uint            `gorm:"not null;index" json:"group_id"`              // Foreign key to Group
	Group       Group           `json:"-"`                                           // Owning group
	PaidByID    uint            `gorm:"not null" json:"paid_by_id"`                  // Foreign key to the paying User
	PaidBy      User            `gorm:"foreignKey:PaidByID" json:"paid_by"`          // User who paid
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`   // Total amount, 2 decimal places
	Description string          `json:"description"`                                 // Free-form description
	Splits      []Split         `gorm:"constraint:OnDelete:CASCADE" json:"splits"`   // Owned ledger entries, sum equals Amount
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType tags how a split's amount was derived from its expense.
type SplitType string

// Split types
const (
	SplitTypeEqual      SplitType = "EQUAL"      // Equal share of the expense
	SplitTypePercentage SplitType = "PERCENTAGE" // Share derived from a percentage
	SplitTypeCustom     SplitType = "CUSTOM"     // Caller-supplied amount
	SplitTypeExcluded   SplitType = "EXCLUDED"   // Reserved: no strategy produces these
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	switch t {
	case SplitTypeEqual, SplitTypePercentage, SplitTypeCustom, SplitTypeExcluded:
		return true
	}
	return false
}

// SplitStatus is the lifecycle state of a split. Transitions only move
// forward: PENDING -> PAID -> SETTLED.
type SplitStatus string

// Split statuses
const (
	SplitStatusPending SplitStatus = "PENDING" // Created, not yet paid
	SplitStatusPaid    SplitStatus = "PAID"    // Obligor has paid their share
	SplitStatusSettled SplitStatus = "SETTLED" // Cleared through a settlement
)

// Valid reports whether s is a known split status.
func (s SplitStatus) Valid() bool {
	switch s {
	case SplitStatusPending, SplitStatusPaid, SplitStatusSettled:
		return true
	}
	return false
}

// rank orders statuses for the forward-only transition check.
func (s SplitStatus) rank() int {
	switch s {
	case SplitStatusPending:
		return 0
	case SplitStatusPaid:
		return 1
	case SplitStatusSettled:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving from s to next advances the
// lifecycle. Same-status and backward moves are rejected.
func (s SplitStatus) CanTransitionTo(next SplitStatus) bool {
	return next.Valid() && next.rank() > s.rank()
}

// Split Model
//
// One ledger entry: a user's share of one expense. The user reference is a
// non-owning lookup; the expense reference is the owning side.
type Split struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                                       // Primary key
	ExpenseID uint            `gorm:"not null;index" json:"expense_id"`                           // Foreign key to the owning Expense
	Expense   *Expense        `json:"-"`                                                          // Owning expense
	UserID    uint            `gorm:"not null;index" json:"user_id"`                              // Foreign key to the obligor
	User      User            `json:"-"`                                                          // Obligor
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`                  // Share amount, always > 0
	SplitType SplitType       `gorm:"type:varchar(16);not null;default:EQUAL" json:"split_type"`  // Allocation strategy tag
	Status    SplitStatus     `gorm:"type:varchar(16);not null;default:PENDING" json:"status"`    // Lifecycle status
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`                           // Stamped on first persist
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`                           // Stamped on every mutation
}

package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"settleup/internal/domain"
)

// Splits provides access to the split collection, including the filtered
// lookups and aggregate sums the balance queries are built on.
type Splits struct {
	db *gorm.DB
}

// NewSplits creates a split repository on the given handle.
func NewSplits(db *gorm.DB) *Splits {
	return &Splits{db: db}
}

// WithTx returns a copy of the repository bound to the transaction handle.
func (r *Splits) WithTx(tx *gorm.DB) *Splits {
	return &Splits{db: tx}
}

// Get fetches a split with its owning expense preloaded.
func (r *Splits) Get(id uint) (*domain.Split, error) {
	var split domain.Split
	if err := r.db.Preload("Expense").First(&split, id).Error; err != nil {
		return nil, err
	}
	return &split, nil
}

// Save persists the split, creating it when it has no ID yet. gorm stamps
// CreatedAt on first persist and UpdatedAt on every save.
func (r *Splits) Save(split *domain.Split) error {
	return r.db.Save(split).Error
}

// Delete removes a split by ID. The owning expense is never touched.
func (r *Splits) Delete(id uint) error {
	return r.db.Delete(&domain.Split{}, id).Error
}

// ByUser returns all splits owed by the user across every group.
func (r *Splits) ByUser(userID uint) ([]domain.Split, error) {
	var splits []domain.Split
	if err := r.db.Where("user_id = ?", userID).Find(&splits).Error; err != nil {
		return nil, err
	}
	return splits, nil
}

// ByExpense returns all splits belonging to the expense.
func (r *Splits) ByExpense(expenseID uint) ([]domain.Split, error) {
	var splits []domain.Split
	if err := r.db.Where("expense_id = ?", expenseID).Find(&splits).Error; err != nil {
		return nil, err
	}
	return splits, nil
}

// ByUserAndExpense returns the user's split within one expense.
func (r *Splits) ByUserAndExpense(userID, expenseID uint) (*domain.Split, error) {
	var split domain.Split
	if err := r.db.Where("user_id = ? AND expense_id = ?", userID, expenseID).First(&split).Error; err != nil {
		return nil, err
	}
	return &split, nil
}

// ByExpenseAndStatus returns the expense's splits with the given status.
func (r *Splits) ByExpenseAndStatus(expenseID uint, status domain.SplitStatus) ([]domain.Split, error) {
	var splits []domain.Split
	if err := r.db.Where("expense_id = ? AND status = ?", expenseID, status).Find(&splits).Error; err != nil {
		return nil, err
	}
	return splits, nil
}

// ByUserAndStatus returns the user's splits with the given status across
// every group.
func (r *Splits) ByUserAndStatus(userID uint, status domain.SplitStatus) ([]domain.Split, error) {
	var splits []domain.Split
	if err := r.db.Where("user_id = ? AND status = ?", userID, status).Find(&splits).Error; err != nil {
		return nil, err
	}
	return splits, nil
}

// PendingByGroup returns every PENDING split whose owning expense belongs to
// the group, in stable storage order.
func (r *Splits) PendingByGroup(groupID uint) ([]domain.Split, error) {
	var splits []domain.Split
	err := r.db.
		Joins("JOIN expenses ON expenses.id = splits.expense_id").
		Where("expenses.group_id = ? AND splits.status = ?", groupID, domain.SplitStatusPending).
		Find(&splits).Error
	if err != nil {
		return nil, err
	}
	return splits, nil
}

// SumByUserGroupStatus totals the user's split amounts in a group for one
// status. Missing rows sum to zero, not an error.
func (r *Splits) SumByUserGroupStatus(userID, groupID uint, status domain.SplitStatus) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&domain.Split{}).
		Joins("JOIN expenses ON expenses.id = splits.expense_id").
		Where("splits.user_id = ? AND expenses.group_id = ? AND splits.status = ?", userID, groupID, status).
		Select("COALESCE(SUM(splits.amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

package repository

import (
	"settleup/internal/domain"

	"gorm.io/gorm"
)

// Expenses provides access to the expense collection.
type Expenses struct {
	db *gorm.DB
}

// NewExpenses creates an expense repository on the given handle.
func NewExpenses(db *gorm.DB) *Expenses {
	return &Expenses{db: db}
}

// WithTx returns a copy of the repository bound to the transaction handle.
func (r *Expenses) WithTx(tx *gorm.DB) *Expenses {
	return &Expenses{db: tx}
}

// Get fetches an expense with its splits and payer preloaded.
func (r *Expenses) Get(id uint) (*domain.Expense, error) {
	var expense domain.Expense
	if err := r.db.Preload("Splits").Preload("PaidBy").First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// Save persists the expense, creating it when it has no ID yet.
func (r *Expenses) Save(expense *domain.Expense) error {
	return r.db.Save(expense).Error
}

// Delete removes an expense and every split it owns. The split delete is
// explicit rather than left to the foreign key so cascade semantics hold on
// backends that do not enforce constraints.
func (r *Expenses) Delete(id uint) error {
	if err := r.db.Where("expense_id = ?", id).Delete(&domain.Split{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Expense{}, id).Error
}

// List returns all expenses with splits and payer preloaded.
func (r *Expenses) List() ([]domain.Expense, error) {
	var expenses []domain.Expense
	if err := r.db.Preload("Splits").Preload("PaidBy").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// ListByGroup returns the group's expenses with splits preloaded.
func (r *Expenses) ListByGroup(groupID uint) ([]domain.Expense, error) {
	var expenses []domain.Expense
	if err := r.db.Preload("Splits").Where("group_id = ?", groupID).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Count returns the number of expenses.
func (r *Expenses) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Expense{}).Count(&count).Error
	return count, err
}

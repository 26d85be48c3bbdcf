// Package repository wraps gorm access to the entity collections behind a
// narrow contract: get, save, delete, list, plus the filtered lookups the
// ledger needs. Not-found conditions surface as gorm.ErrRecordNotFound and
// are translated by the callers.
package repository

import (
	"settleup/internal/domain"

	"gorm.io/gorm"
)

// Users provides access to the user collection.
type Users struct {
	db *gorm.DB
}

// NewUsers creates a user repository on the given handle.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// WithTx returns a copy of the repository bound to the transaction handle.
func (r *Users) WithTx(tx *gorm.DB) *Users {
	return &Users{db: tx}
}

// Get fetches a user by ID.
func (r *Users) Get(id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email.
func (r *Users) GetByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Save persists the user, creating it when it has no ID yet.
func (r *Users) Save(user *domain.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user by ID.
func (r *Users) Delete(id uint) error {
	return r.db.Delete(&domain.User{}, id).Error
}

// List returns all users.
func (r *Users) List() ([]domain.User, error) {
	var users []domain.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of users.
func (r *Users) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Count(&count).Error
	return count, err
}

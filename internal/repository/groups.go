package repository

import (
	"settleup/internal/domain"

	"gorm.io/gorm"
)

// Groups provides access to the group collection and its membership set.
type Groups struct {
	db *gorm.DB
}

// NewGroups creates a group repository on the given handle.
func NewGroups(db *gorm.DB) *Groups {
	return &Groups{db: db}
}

// WithTx returns a copy of the repository bound to the transaction handle.
func (r *Groups) WithTx(tx *gorm.DB) *Groups {
	return &Groups{db: tx}
}

// Get fetches a group with its members preloaded.
func (r *Groups) Get(id uint) (*domain.Group, error) {
	var group domain.Group
	if err := r.db.Preload("Members").First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Save persists the group and its membership association.
func (r *Groups) Save(group *domain.Group) error {
	return r.db.Save(group).Error
}

// Delete removes a group by ID. Member users are untouched; membership is a
// non-owning relation.
func (r *Groups) Delete(id uint) error {
	return r.db.Select("Members").Delete(&domain.Group{ID: id}).Error
}

// List returns all groups with their members preloaded.
func (r *Groups) List() ([]domain.Group, error) {
	var groups []domain.Group
	if err := r.db.Preload("Members").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// AddMember adds the user to the group's member set. Adding an existing
// member is a no-op; membership is unique per group.
func (r *Groups) AddMember(group *domain.Group, user *domain.User) error {
	return r.db.Model(group).Association("Members").Append(user)
}

// Count returns the number of groups.
func (r *Groups) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Group{}).Count(&count).Error
	return count, err
}

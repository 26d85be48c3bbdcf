package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`               // Primary key
	Name     string `gorm:"not null" json:"name"`               // Display name
	Email    string `gorm:"unique;not null" json:"email"`       // Unique email, used for login
	Password string `gorm:"not null" json:"-"`                  // Hashed password, never serialized
	Role     string `gorm:"default:user" json:"role,omitempty"` // Role: user or admin
}

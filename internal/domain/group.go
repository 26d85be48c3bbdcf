package domain

// Group Model
//
// A group is the aggregation boundary for balance queries: every expense
// belongs to exactly one group and splits are only allocated to its members.
type Group struct {
	ID      uint   `gorm:"primaryKey" json:"id"`                 // Primary key
	Name    string `gorm:"not null" json:"name"`                 // Group name
	Members []User `gorm:"many2many:group_members" json:"members"` // Unordered, unique membership
}

// HasMember reports whether the user is a member of the group.
func (g *Group) HasMember(userID uint) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

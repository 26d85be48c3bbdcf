package api

import (
	"net/http" // HTTP status codes

	"settleup/internal/ledger"     // Balance aggregator
	"settleup/internal/repository" // Entity store contract

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/shopspring/decimal"
	"gorm.io/gorm" // GORM ORM library
)

// SummaryHandler returns entity counts plus the full user, group and
// expense listings. Admin only.
func SummaryHandler(db *gorm.DB, svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users := repository.NewUsers(db)
		groups := repository.NewGroups(db)
		expenses := repository.NewExpenses(db)

		totalUsers, err := users.Count()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		totalGroups, err := groups.Count()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count groups"})
			return
		}
		totalExpenses, err := expenses.Count()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count expenses"})
			return
		}
		allUsers, err := users.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		allGroups, err := groups.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
			return
		}
		allExpenses, err := svc.ListExpenses()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total_users":    totalUsers,    // Number of users
			"total_groups":   totalGroups,   // Number of groups
			"total_expenses": totalExpenses, // Number of expenses
			"users":          allUsers,      // All users
			"groups":         allGroups,     // All groups
			"expenses":       allExpenses,   // All expenses with splits
		})
	}
}

// UserBalanceReport is one user's aggregate view across the ledger
type UserBalanceReport struct {
	UserID        uint                       `json:"user_id"`        // User ID
	UserName      string                     `json:"user_name"`      // Display name
	TotalOwed     decimal.Decimal            `json:"total_owed"`     // PENDING splits across all groups
	GroupBalances map[string]decimal.Decimal `json:"group_balances"` // Net balance per group the user belongs to
}

// UserBalancesHandler computes every user's total owed and per-group net
// balance. Admin only.
func UserBalancesHandler(db *gorm.DB, svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		allUsers, err := repository.NewUsers(db).List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		allGroups, err := repository.NewGroups(db).List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
			return
		}
		reports := make([]UserBalanceReport, 0, len(allUsers))
		for _, user := range allUsers {
			totalOwed, err := svc.TotalOwed(user.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total owed"})
				return
			}
			groupBalances := make(map[string]decimal.Decimal)
			for i := range allGroups {
				// Only groups the user belongs to appear in the report
				if !allGroups[i].HasMember(user.ID) {
					continue
				}
				balance, err := svc.BalanceInGroup(user.ID, allGroups[i].ID)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
					return
				}
				groupBalances[allGroups[i].Name] = balance
			}
			reports = append(reports, UserBalanceReport{
				UserID:        user.ID,
				UserName:      user.Name,
				TotalOwed:     totalOwed,
				GroupBalances: groupBalances,
			})
		}
		c.JSON(http.StatusOK, gin.H{"balances": reports})
	}
}

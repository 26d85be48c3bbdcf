package api

import (
	"net/http" // HTTP status codes

	"settleup/internal/allocation" // Allocation engine types
	"settleup/internal/domain"     // Importing domain models
	"settleup/internal/ledger"     // Expense orchestrator

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/shopspring/decimal"
)

// SplitDetail is one participant line of an expense request. Amount is read
// for CUSTOM, Percentage for PERCENTAGE; EQUAL needs neither.
type SplitDetail struct {
	UserID     uint            `json:"user_id" binding:"required"` // Obligor user ID
	Amount     decimal.Decimal `json:"amount"`                     // Used for CUSTOM
	Percentage decimal.Decimal `json:"percentage"`                 // Used for PERCENTAGE
}

// AddExpenseRequest represents a flexible expense creation request
type AddExpenseRequest struct {
	GroupID     uint             `json:"group_id" binding:"required"`   // Group the expense belongs to
	PaidByID    uint             `json:"paid_by_id" binding:"required"` // User who paid
	Amount      decimal.Decimal  `json:"amount" binding:"required"`     // Total amount
	Description string           `json:"description"`                   // Free-form description
	SplitType   domain.SplitType `json:"split_type"`                    // Allocation strategy, defaults to EQUAL
	Splits      []SplitDetail    `json:"splits"`                        // Per-user details, optional for EQUAL
}

// AddExpenseHandler records an expense and allocates its splits
func AddExpenseHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || !req.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Default the strategy the way the ledger entries default
		if req.SplitType == "" {
			req.SplitType = domain.SplitTypeEqual
		}
		// Convert request lines to allocation participants
		details := make([]allocation.Participant, len(req.Splits))
		for i, d := range req.Splits {
			details[i] = allocation.Participant{
				UserID:     d.UserID,
				Amount:     d.Amount,
				Percentage: d.Percentage,
			}
		}
		expense, err := svc.RecordExpense(req.GroupID, req.PaidByID, req.Amount, req.Description, req.SplitType, details)
		if err != nil {
			abortWithError(c, err)
			return
		}
		// Invalidate cached balances for every obligor in the group
		userIDs := make([]uint, len(expense.Splits))
		for i, split := range expense.Splits {
			userIDs[i] = split.UserID
		}
		invalidateBalances(rdb, expense.GroupID, userIDs...)
		c.JSON(http.StatusCreated, gin.H{"expense": expense})
	}
}

// ListExpensesHandler returns all expenses with their splits
func ListExpensesHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, err := svc.ListExpenses()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"expenses": expenses})
	}
}

// GetExpenseHandler returns one expense by ID
func GetExpenseHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenseID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		expense, err := svc.GetExpense(expenseID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"expense": expense})
	}
}

// DeleteExpenseHandler removes an expense and its splits
func DeleteExpenseHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenseID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		// Fetch first so the cache invalidation knows who was affected
		expense, err := svc.GetExpense(expenseID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := svc.DeleteExpense(expenseID); err != nil {
			abortWithError(c, err)
			return
		}
		userIDs := make([]uint, len(expense.Splits))
		for i, split := range expense.Splits {
			userIDs[i] = split.UserID
		}
		invalidateBalances(rdb, expense.GroupID, userIDs...)
		c.Status(http.StatusNoContent)
	}
}

package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"settleup/internal/domain" // Importing domain models
	"settleup/internal/ledger" // Expense orchestrator
	"settleup/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/shopspring/decimal"
)

// UpdateSplitAmountRequest represents a split amount change
type UpdateSplitAmountRequest struct {
	NewAmount decimal.Decimal `json:"new_amount" binding:"required"` // Replacement amount
}

// SplitsByUserHandler returns all splits owed by a user
func SplitsByUserHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uintParam(c, "userId")
		if !ok {
			return
		}
		splits, err := svc.SplitsByUser(userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"splits": splits})
	}
}

// SplitsByExpenseHandler returns all splits belonging to an expense
func SplitsByExpenseHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenseID, ok := uintParam(c, "expenseId")
		if !ok {
			return
		}
		splits, err := svc.SplitsByExpense(expenseID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"splits": splits})
	}
}

// SplitByUserAndExpenseHandler returns a user's split within one expense
func SplitByUserAndExpenseHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uintParam(c, "userId")
		if !ok {
			return
		}
		expenseID, ok := uintParam(c, "expenseId")
		if !ok {
			return
		}
		split, err := svc.SplitByUserAndExpense(userID, expenseID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"split": split})
	}
}

// markSplitHandler advances a split to the target status
func markSplitHandler(svc *ledger.Service, rdb *redis.Client, status domain.SplitStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		splitID, ok := uintParam(c, "splitId")
		if !ok {
			return
		}
		split, err := svc.UpdateSplitStatus(splitID, status)
		if err != nil {
			abortWithError(c, err)
			return
		}
		// The split's expense is preloaded, so the group is known here
		if split.Expense != nil {
			invalidateBalances(rdb, split.Expense.GroupID, split.UserID)
		}
		c.JSON(http.StatusOK, gin.H{"split": split})
	}
}

// MarkSplitPaidHandler marks a PENDING split as PAID
func MarkSplitPaidHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return markSplitHandler(svc, rdb, domain.SplitStatusPaid)
}

// MarkSplitSettledHandler marks a split as SETTLED
func MarkSplitSettledHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return markSplitHandler(svc, rdb, domain.SplitStatusSettled)
}

// UpdateSplitAmountHandler replaces a split's amount
func UpdateSplitAmountHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		splitID, ok := uintParam(c, "splitId")
		if !ok {
			return
		}
		var req UpdateSplitAmountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		split, err := svc.UpdateSplitAmount(splitID, req.NewAmount)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if split.Expense != nil {
			invalidateBalances(rdb, split.Expense.GroupID, split.UserID)
		}
		c.JSON(http.StatusOK, gin.H{"split": split})
	}
}

// DeleteSplitHandler removes a single split; its expense stays
func DeleteSplitHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		splitID, ok := uintParam(c, "splitId")
		if !ok {
			return
		}
		// Fetch first so the cache invalidation knows who was affected
		split, err := svc.GetSplit(splitID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := svc.DeleteSplit(splitID); err != nil {
			abortWithError(c, err)
			return
		}
		if split.Expense != nil {
			invalidateBalances(rdb, split.Expense.GroupID, split.UserID)
		}
		c.Status(http.StatusNoContent)
	}
}

// PendingSplitsHandler returns a group's PENDING splits, cached for 60s
func PendingSplitsHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, ok := uintParam(c, "groupId")
		if !ok {
			return
		}
		ctx := context.Background()      // Context for Redis operations
		cacheKey := pendingKey(groupID)  // Cache key for the group's pending list
		var cached []domain.Split        // Cached splits
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"splits": cached, "cached": true})
			return
		}
		splits, err := svc.PendingSplits(groupID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, splits) // Cache until the next mutation or TTL
		c.JSON(http.StatusOK, gin.H{"splits": splits, "cached": false})
	}
}

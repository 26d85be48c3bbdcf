package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"settleup/internal/ledger" // Balance aggregator
	"settleup/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/shopspring/decimal"
)

// GroupBalanceHandler returns a user's net balance in a group: PENDING
// minus PAID, SETTLED excluded, positive = user owes the group
func GroupBalanceHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uintParam(c, "userId")
		if !ok {
			return
		}
		groupID, ok := uintParam(c, "groupId")
		if !ok {
			return
		}
		ctx := context.Background()              // Context for Redis operations
		cacheKey := balanceKey(userID, groupID)  // Cache key for this balance
		var cached decimal.Decimal               // Cached balance
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"user_id": userID, "group_id": groupID, "balance": cached, "cached": true})
			return
		}
		balance, err := svc.BalanceInGroup(userID, groupID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, balance) // Cache until the next mutation or TTL
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "group_id": groupID, "balance": balance, "cached": false})
	}
}

// TotalOwedHandler returns the sum of a user's PENDING splits across all
// groups; PAID splits are ignored entirely
func TotalOwedHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uintParam(c, "userId")
		if !ok {
			return
		}
		ctx := context.Background()     // Context for Redis operations
		cacheKey := totalOwedKey(userID) // Cache key for this total
		var cached decimal.Decimal      // Cached total
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"user_id": userID, "total_owed": cached, "cached": true})
			return
		}
		total, err := svc.TotalOwed(userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, total) // Cache until the next mutation or TTL
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "total_owed": total, "cached": false})
	}
}

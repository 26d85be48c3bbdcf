package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"settleup/internal/ledger"
	"settleup/internal/utils"
)

// statusFromError maps the ledger error taxonomy to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the mapped status and the error message.
func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

// uintParam parses a numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// Cache keys for the balance read side
func balanceKey(userID, groupID uint) string {
	return "balance:user:" + strconv.Itoa(int(userID)) + ":group:" + strconv.Itoa(int(groupID))
}

func totalOwedKey(userID uint) string {
	return "totalowed:user:" + strconv.Itoa(int(userID))
}

func pendingKey(groupID uint) string {
	return "pending:group:" + strconv.Itoa(int(groupID))
}

// invalidateBalances drops every cached balance touched by a ledger
// mutation: the per-group balance and total-owed of each affected user, and
// the group's pending-split list.
func invalidateBalances(rdb *redis.Client, groupID uint, userIDs ...uint) {
	ctx := context.Background() // Context for Redis operations
	_ = utils.DeleteCache(ctx, rdb, pendingKey(groupID))
	for _, userID := range userIDs {
		_ = utils.DeleteCache(ctx, rdb, balanceKey(userID, groupID)) // Group balance
		_ = utils.DeleteCache(ctx, rdb, totalOwedKey(userID))        // Global total owed
	}
}

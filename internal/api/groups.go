package api

import (
	"net/http" // HTTP status codes

	"settleup/internal/domain"     // Importing domain models
	"settleup/internal/repository" // Entity store contract

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateGroupRequest represents a group creation request
type CreateGroupRequest struct {
	Name      string `json:"name" binding:"required"` // Group name must be provided
	MemberIDs []uint `json:"member_ids"`              // Initial member user IDs, may be empty
}

// AddMemberRequest represents a membership addition request
type AddMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"` // User to add
}

// CreateGroupHandler creates a group with an optional initial member set
func CreateGroupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGroupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		users := repository.NewUsers(db)
		// Resolve every initial member; unknown IDs fail the whole request
		members := make([]domain.User, 0, len(req.MemberIDs))
		for _, id := range req.MemberIDs {
			user, err := users.Get(id)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Member user not found"})
				return
			}
			members = append(members, *user)
		}
		group := domain.Group{Name: req.Name, Members: members}
		if err := repository.NewGroups(db).Save(&group); err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  req.Name,
				"error": err.Error(),
			}).Error("Failed to create group")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"group": group})
	}
}

// ListGroupsHandler returns all groups with their members
func ListGroupsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groups, err := repository.NewGroups(db).List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"groups": groups})
	}
}

// GetGroupHandler returns one group by ID
func GetGroupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		group, err := repository.NewGroups(db).Get(groupID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group": group})
	}
}

// DeleteGroupHandler removes a group; member users are untouched
func DeleteGroupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		groups := repository.NewGroups(db)
		if _, err := groups.Get(groupID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		if err := groups.Delete(groupID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
			return
		}
		logrus.WithField("group_id", groupID).Info("Group deleted")
		c.Status(http.StatusNoContent)
	}
}

// AddMemberHandler adds a user to a group's member set
func AddMemberHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req AddMemberRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		groups := repository.NewGroups(db)
		group, err := groups.Get(groupID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		user, err := repository.NewUsers(db).Get(req.UserID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := groups.AddMember(group, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"group_id": groupID,
			"user_id":  req.UserID,
		}).Info("Member added to group")
		c.JSON(http.StatusOK, gin.H{"message": "Member added"})
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/clockwise-dev/clockwise/db"
	"github.com/clockwise-dev/clockwise/internal/models"
	"github.com/clockwise-dev/clockwise/internal/services"
	"github.com/clockwise-dev/clockwise/internal/types"
	"github.com/clockwise-dev/clockwise/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateUserRequest struct {
	Name     string `json:"name"`
	IsAdmin  *bool  `json:"is_admin"`
	IsActive *bool  `json:"is_active"`
}

// ListUsers is admin-only; it backs the assignment picker in the admin UI.
func ListUsers(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := services.RequireAdmin(currentUser); err != nil {
		respondServiceError(ctx, err)
		return
	}

	var users []models.User

	if err := db.DB.Order("name ASC").Find(&users).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	respondData(ctx, http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := services.RequireSelfOrAdmin(currentUser, userID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
			return
		}
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, userResponse(&user))
}

func UpdateUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := services.RequireAdmin(currentUser); err != nil {
		respondServiceError(ctx, err)
		return
	}

	userID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
			return
		}
		respondServiceError(ctx, err)
		return
	}

	var body UpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	updates := make(map[string]interface{})

	if body.Name != "" {
		updates["name"] = body.Name
	}

	if body.IsAdmin != nil {
		updates["is_admin"] = *body.IsAdmin
	}

	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}

	if len(updates) == 0 {
		respondError(ctx, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := db.DB.First(&user, user.ID).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, userResponse(&user))
}

// DeactivateUser is the admin "delete": the account is flagged inactive so
// its assignment and hour history stays intact.
func DeactivateUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := services.RequireAdmin(currentUser); err != nil {
		respondServiceError(ctx, err)
		return
	}

	userID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if userID == currentUser.ID {
		respondError(ctx, http.StatusBadRequest, "You cannot deactivate your own account")
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
			return
		}
		respondServiceError(ctx, err)
		return
	}

	if err := db.DB.Model(&user).Update("is_active", false).Error; err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

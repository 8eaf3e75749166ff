package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProjectID(ctx *gin.Context) (uint, error) {
	return getUintParam(ctx, "project_id", "Project ID")
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return getUintParam(ctx, "user_id", "User ID")
}

func GetEntryID(ctx *gin.Context) (uint, error) {
	return getUintParam(ctx, "entry_id", "Entry ID")
}

func getUintParam(ctx *gin.Context, name string, label string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(label + " not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + label)
	}

	return uint(id), nil
}

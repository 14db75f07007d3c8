package controllers

import (
	"net/http"

	"github.com/karan23gupta/workout-calendar/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{svc: svc}
}

func (u *UserController) GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	profile, err := u.svc.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (u *UserController) UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := u.svc.UpdateProfile(userID, input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

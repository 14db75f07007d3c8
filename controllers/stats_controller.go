package controllers

import (
	"net/http"

	"github.com/karan23gupta/workout-calendar/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	svc *services.WorkoutService
}

func NewStatsController(svc *services.WorkoutService) *StatsController {
	return &StatsController{svc: svc}
}

// Streaks recomputes current and longest streak from the user's full
// history on every call.
func (s *StatsController) Streaks(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	result, err := s.svc.Streaks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Leaderboard ranks all users by this month's workouts and streaks.
func (s *StatsController) Leaderboard(c *gin.Context) {
	entries, err := s.svc.Leaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

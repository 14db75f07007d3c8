package routes

import (
	"net/http"
	"time"

	"github.com/karan23gupta/workout-calendar/config"
	"github.com/karan23gupta/workout-calendar/controllers"
	"github.com/karan23gupta/workout-calendar/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	authC *controllers.AuthController,
	userC *controllers.UserController,
	workoutC *controllers.WorkoutController,
	statsC *controllers.StatsController,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authC.Register)
		auth.POST("/login", authC.Login)
		auth.POST("/forgot-password", authC.ForgotPassword)
		auth.POST("/reset-password", authC.ResetPassword)
	}

	authRequired := middlewares.AuthMiddleware([]byte(cfg.JWTSecret), db)

	// Protected user routes
	user := r.Group("/user")
	user.Use(authRequired)
	{
		user.GET("/profile", userC.GetProfile)
		user.PUT("/profile", userC.UpdateProfile)
	}

	workouts := r.Group("/workouts")
	workouts.Use(authRequired)
	{
		workouts.GET("", workoutC.List)
		workouts.POST("", workoutC.Add)
		workouts.DELETE("/:date", workoutC.Delete)
	}

	stats := r.Group("/stats")
	stats.Use(authRequired)
	{
		stats.GET("/streaks", statsC.Streaks)
		stats.GET("/leaderboard", statsC.Leaderboard)
	}

	return r
}

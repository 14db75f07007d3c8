package main

import (
	"log"
	"path/filepath"

	"github.com/karan23gupta/workout-calendar/config"
	"github.com/karan23gupta/workout-calendar/controllers"
	"github.com/karan23gupta/workout-calendar/routes"
	"github.com/karan23gupta/workout-calendar/services"
	"github.com/karan23gupta/workout-calendar/utils"
)

func main() {
	cfg := config.Load()
	db := config.InitDB(cfg)

	var mailer *utils.Mailer
	if cfg.SESEmail != "" {
		m, err := utils.NewMailer(cfg.AWSRegion, cfg.SESEmail)
		if err != nil {
			log.Fatalf("mailer init failed: %v", err)
		}
		mailer = m
	}

	var storage services.PhotoStorage
	if cfg.S3Bucket != "" {
		s3Storage, err := services.NewS3PhotoStorage(cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("S3 storage init failed: %v", err)
		}
		storage = s3Storage
	} else {
		storage = services.NewLocalPhotoStorage(cfg.UploadDir)
	}

	var detector services.FaceDetector
	if cfg.FaceDetection {
		d, err := services.NewRekognitionFaceDetector(cfg.AWSRegion)
		if err != nil {
			// face detection is optional; run without it
			log.Printf("face detection unavailable: %v", err)
		} else {
			detector = d
		}
	}

	authSvc := services.NewAuthService(db, []byte(cfg.JWTSecret), mailer)
	userSvc := services.NewUserService(db)
	workoutSvc := services.NewWorkoutService(db, storage, detector)

	r := routes.SetupRouter(
		cfg,
		db,
		controllers.NewAuthController(authSvc),
		controllers.NewUserController(userSvc),
		controllers.NewWorkoutController(workoutSvc, filepath.Join(cfg.UploadDir, "tmp")),
		controllers.NewStatsController(workoutSvc),
	)
	r.Run(":" + cfg.Port)
}

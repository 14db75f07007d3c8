package config

import (
	"fmt"
	"log"
	"os"

	"github.com/karan23gupta/workout-calendar/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config gathers everything the services need up front, so nothing
// reaches for os.Getenv after startup.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret string
	Port      string

	// UploadDir holds temp files during validation and, when S3 is not
	// configured, the permanent photos as well.
	UploadDir string

	S3Bucket  string
	AWSRegion string
	SESEmail  string

	// FaceDetection toggles the optional Rekognition selfie check.
	FaceDetection bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          os.Getenv("PORT"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		AWSRegion:     os.Getenv("AWS_REGION"),
		SESEmail:      os.Getenv("SES_EMAIL"),
		FaceDetection: os.Getenv("FACE_DETECTION") == "on",
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	return cfg
}

func InitDB(cfg *Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Workout{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	return db
}

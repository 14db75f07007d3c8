package services

import (
	"errors"
	"log"
	"time"

	"github.com/karan23gupta/workout-calendar/models"
	"github.com/karan23gupta/workout-calendar/utils"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	mailer    *utils.Mailer // nil when SES is not configured
}

func NewAuthService(db *gorm.DB, jwtSecret []byte, mailer *utils.Mailer) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret, mailer: mailer}
}

func (s *AuthService) Register(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
	}

	err = s.db.Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
}

// ForgotPassword always reports success to the caller so the endpoint
// cannot be used to probe which emails exist.
func (s *AuthService) ForgotPassword(email string) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return
	}

	token := utils.GenerateRandomToken(6)
	user.ResetToken = token
	user.ResetTokenExp = time.Now().Add(15 * time.Minute)
	s.db.Save(&user)

	if s.mailer == nil {
		log.Printf("mailer not configured; reset code for %s not sent", email)
		return
	}
	if err := s.mailer.SendResetEmail(user.Email, token); err != nil {
		log.Printf("reset email to %s failed: %v", email, err)
	}
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	var user models.User
	err := s.db.Where("reset_token = ? AND reset_token <> ''", token).First(&user).Error
	if err != nil || time.Now().After(user.ResetTokenExp) {
		return ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.Save(&user).Error
}

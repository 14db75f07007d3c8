package services

import (
	"errors"

	"github.com/karan23gupta/workout-calendar/models"
	"github.com/karan23gupta/workout-calendar/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type ProfileInput struct {
	FullName string  `json:"full_name"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

func (s *UserService) GetProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	profile := map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"height_cm": user.HeightCm,
		"weight_kg": user.WeightKg,
	}

	if bmi, err := utils.CalculateBMI(user.HeightCm, user.WeightKg); err == nil {
		profile["bmi"] = bmi
		profile["bmi_category"] = utils.BMICategory(bmi)
	}

	return profile, nil
}

func (s *UserService) UpdateProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.HeightCm > 0 {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		user.WeightKg = input.WeightKg
	}

	return s.db.Save(&user).Error
}

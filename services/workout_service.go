package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/karan23gupta/workout-calendar/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMalformedDate    = errors.New("malformed workout date")
	ErrNotToday         = errors.New("workout date must be today")
	ErrDuplicateWorkout = errors.New("workout already logged for this day")
	ErrWorkoutNotFound  = errors.New("no workout for that day")
	ErrStorageFailed    = errors.New("failed to store workout")
)

// RejectionError reports a failed photo or selfie check with a stable
// reason code; user-facing copy is mapped at the controller.
type RejectionError struct {
	Reason PhotoReason
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("photo rejected: %s", e.Reason)
}

type WorkoutService struct {
	db       *gorm.DB
	storage  PhotoStorage
	detector FaceDetector // nil when face detection is not deployed

	// the two photo predicates, held as fields so the pipeline composes
	// them rather than entangling them (and so tests can stub either)
	checkPhoto  func(path string, expected time.Time) PhotoCheckOutcome
	checkSelfie func(path string, detector FaceDetector) PhotoCheckOutcome
}

func NewWorkoutService(db *gorm.DB, storage PhotoStorage, detector FaceDetector) *WorkoutService {
	return &WorkoutService{
		db:          db,
		storage:     storage,
		detector:    detector,
		checkPhoto:  CheckPhotoDate,
		checkSelfie: CheckSelfie,
	}
}

// AddWorkout runs the intake pipeline for one upload attempt:
//
//	date gate -> duplicate gate -> EXIF date -> selfie heuristics -> commit
//
// No permanent file or row exists until every gate passes, and the temp
// file never outlives the attempt.
func (s *WorkoutService) AddWorkout(userID uint, dateStr, notes, tempPath string) (*models.Workout, error) {
	committed := false
	defer func() {
		if !committed {
			os.Remove(tempPath)
		}
	}()

	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return nil, ErrMalformedDate
	}
	today := dayStartLocal(time.Now())
	if !date.Equal(today) {
		return nil, ErrNotToday
	}

	// cheap check first: no point decoding images for a day already logged
	var existing models.Workout
	err = s.db.Where("user_id = ? AND date = ?", userID, today).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateWorkout
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	if out := s.checkPhoto(tempPath, today); !out.Accepted {
		return nil, &RejectionError{Reason: out.Reason}
	}
	if out := s.checkSelfie(tempPath, s.detector); !out.Accepted {
		return nil, &RejectionError{Reason: out.Reason}
	}

	key := fmt.Sprintf("workouts/%d/%s%s", userID, uuid.NewString(), filepath.Ext(tempPath))
	ref, err := s.storage.Store(tempPath, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	// the temp file is consumed by Store; nothing left to clean up
	committed = true

	workout := models.Workout{
		UserID:   userID,
		Date:     today,
		ImageRef: ref,
		Notes:    notes,
	}
	if err := s.db.Create(&workout).Error; err != nil {
		// roll the photo back so a failed insert leaves no orphan
		if rmErr := s.storage.Remove(ref); rmErr != nil {
			log.Printf("orphaned photo %s: %v", ref, rmErr)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race with a concurrent upload for the same day
			return nil, ErrDuplicateWorkout
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	return &workout, nil
}

func (s *WorkoutService) ListWorkouts(userID uint) ([]models.Workout, error) {
	var workouts []models.Workout
	err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&workouts).Error
	return workouts, err
}

func (s *WorkoutService) DeleteWorkout(userID uint, dateStr string) error {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return ErrMalformedDate
	}

	var workout models.Workout
	err = s.db.Where("user_id = ? AND date = ?", userID, dayStartLocal(date)).First(&workout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrWorkoutNotFound
	}
	if err != nil {
		return err
	}

	// hard delete: a soft-deleted tombstone would keep holding the
	// (user_id, date) unique index and block re-logging the day
	if err := s.db.Unscoped().Delete(&workout).Error; err != nil {
		return err
	}
	if err := s.storage.Remove(workout.ImageRef); err != nil {
		log.Printf("failed to remove photo %s: %v", workout.ImageRef, err)
	}
	return nil
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        uint   `json:"user_id"`
	FullName      string `json:"full_name"`
	TotalWorkouts int    `json:"total_workouts"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// Leaderboard ranks every user with at least one workout by workouts
// logged this month, breaking ties by current and then longest streak.
func (s *WorkoutService) Leaderboard() ([]LeaderboardEntry, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		var dates []time.Time
		err := s.db.Model(&models.Workout{}).
			Where("user_id = ?", u.ID).
			Pluck("date", &dates).Error
		if err != nil {
			return nil, err
		}
		if len(dates) == 0 {
			continue
		}

		monthly := 0
		for _, d := range NormalizeDates(dates) {
			if !d.Before(monthStart) {
				monthly++
			}
		}
		streaks := CalculateStreaks(dates, now)

		entries = append(entries, LeaderboardEntry{
			UserID:        u.ID,
			FullName:      u.FullName,
			TotalWorkouts: monthly,
			CurrentStreak: streaks.CurrentStreak,
			LongestStreak: streaks.LongestStreak,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalWorkouts != b.TotalWorkouts {
			return a.TotalWorkouts > b.TotalWorkouts
		}
		if a.CurrentStreak != b.CurrentStreak {
			return a.CurrentStreak > b.CurrentStreak
		}
		if a.LongestStreak != b.LongestStreak {
			return a.LongestStreak > b.LongestStreak
		}
		return a.UserID < b.UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

// Streaks recomputes both streaks from the full workout history; nothing
// derived is ever persisted.
func (s *WorkoutService) Streaks(userID uint) (StreakResult, error) {
	var dates []time.Time
	err := s.db.Model(&models.Workout{}).
		Where("user_id = ?", userID).
		Pluck("date", &dates).Error
	if err != nil {
		return StreakResult{}, err
	}
	return CalculateStreaks(dates, time.Now()), nil
}

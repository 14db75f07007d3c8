package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/karan23gupta/workout-calendar/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// rejectMessages maps stable core reason codes to user-facing copy. The
// services never produce prose, only codes.
var rejectMessages = map[services.PhotoReason]string{
	services.ReasonNoDateMetadata:         "The photo has no capture-date metadata. Upload an original camera photo.",
	services.ReasonDateMismatch:           "The photo was not taken today. Nice try!",
	services.ReasonUnreadableMetadata:     "The photo's metadata could not be read.",
	services.ReasonDimensionsUnreasonable: "That doesn't look like a gym photo.",
	services.ReasonTooSmall:               "The photo is too small. Upload a full-size picture.",
	services.ReasonNoFaceDetected:         "We couldn't spot you in the photo. Make sure you're in frame.",
}

type WorkoutController struct {
	svc     *services.WorkoutService
	tempDir string
}

func NewWorkoutController(svc *services.WorkoutService, tempDir string) *WorkoutController {
	return &WorkoutController{svc: svc, tempDir: tempDir}
}

func (w *WorkoutController) List(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	workouts, err := w.svc.ListWorkouts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(workouts))
	for _, wk := range workouts {
		out = append(out, gin.H{
			"id":        wk.ID,
			"date":      wk.Date.Format("2006-01-02"),
			"image_ref": wk.ImageRef,
			"notes":     wk.Notes,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Add receives the multipart upload (date, optional notes, image file),
// spools the image to a uniquely named temp file and hands it to the
// intake pipeline.
func (w *WorkoutController) Add(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	dateStr := c.PostForm("date")
	notes := c.PostForm("notes")

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	if err := os.MkdirAll(w.tempDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}
	tempPath := filepath.Join(w.tempDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}

	workout, err := w.svc.AddWorkout(userID, dateStr, notes, tempPath)
	if err != nil {
		w.replyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        workout.ID,
		"date":      workout.Date.Format("2006-01-02"),
		"image_ref": workout.ImageRef,
		"notes":     workout.Notes,
	})
}

func (w *WorkoutController) Delete(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	err := w.svc.DeleteWorkout(userID, c.Param("date"))
	switch {
	case errors.Is(err, services.ErrMalformedDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrWorkoutNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}

func (w *WorkoutController) replyError(c *gin.Context, err error) {
	var rejection *services.RejectionError
	switch {
	case errors.Is(err, services.ErrMalformedDate), errors.Is(err, services.ErrNotToday):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateWorkout):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &rejection):
		msg := rejectMessages[rejection.Reason]
		if msg == "" {
			msg = rejection.Error()
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  msg,
			"reason": rejection.Reason,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save workout"})
	}
}

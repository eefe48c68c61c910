package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/ViniMagaa/cyberlevel-sub001/backend/config"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/gamification"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/models"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewActivityController(db *gorm.DB, cfg *config.Config) *ActivityController {
	return &ActivityController{DB: db, Cfg: cfg}
}

// GetActivity godoc
// @Summary Get activity details
// @Description Returns one activity with the caller's progress on it
// @Tags activities
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /activities/{id} [get]
func (ac *ActivityController) GetActivity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	activityID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid activity ID")
	}

	var activity models.Activity
	if err := ac.DB.First(&activity, activityID).Error; err != nil {
		return utils.NotFound(c, "Activity not found")
	}

	var progress models.ActivityProgress
	status := models.ProgressNotStarted
	if err := ac.DB.Where("user_id = ? AND activity_id = ?", userID, activityID).
		First(&progress).Error; err == nil {
		status = progress.Status
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"activity": activity,
		"status":   status,
		"attempts": progress.Attempts,
	})
}

// StartActivity godoc
// @Summary Start an activity
// @Description Creates or resets the caller's progress on an activity
// @Tags activities
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /activities/{id}/start [post]
func (ac *ActivityController) StartActivity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	activityID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid activity ID")
	}

	var activity models.Activity
	if err := ac.DB.First(&activity, activityID).Error; err != nil {
		return utils.NotFound(c, "Activity not found")
	}

	now := time.Now()

	var progress models.ActivityProgress
	err = ac.DB.Where("user_id = ? AND activity_id = ?", userID, activityID).
		First(&progress).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = models.ActivityProgress{
			UserID:     userID,
			ActivityID: uint(activityID),
			Status:     models.ProgressInProgress,
			StartedAt:  &now,
			Attempts:   1,
		}
		if err := ac.DB.Create(&progress).Error; err != nil {
			return utils.InternalServerError(c, "Could not create progress")
		}
	case err != nil:
		return utils.InternalServerError(c, "Failed to fetch progress")
	default:
		progress.Attempts++
		progress.StartedAt = &now
		progress.Status = models.ProgressInProgress
		if err := ac.DB.Save(&progress).Error; err != nil {
			return utils.InternalServerError(c, "Could not update progress")
		}
	}

	utils.ActivitiesStarted.Inc()

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message":  "Activity started",
		"progress": progress,
	})
}

// CompleteActivity godoc
// @Summary Complete an activity
// @Description Awards XP for the completion and updates the user's total
// @Tags activities
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /activities/{id}/complete [post]
func (ac *ActivityController) CompleteActivity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	activityID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid activity ID")
	}

	var activity models.Activity
	if err := ac.DB.First(&activity, activityID).Error; err != nil {
		return utils.NotFound(c, "Activity not found")
	}

	var (
		xpEarned         int
		totalXP          int
		alreadyCompleted bool
	)

	// The progress write and the user XP increment must land together.
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		var progress models.ActivityProgress
		if err := tx.Where("user_id = ? AND activity_id = ?", userID, activityID).
			First(&progress).Error; err != nil {
			return err
		}

		// A completion is rewarded exactly once, even after a restart. A
		// replayed activity gets its COMPLETED status back, nothing else.
		if progress.CompletedAt != nil {
			alreadyCompleted = true
			xpEarned = progress.XPEarned
			if progress.Status != models.ProgressCompleted {
				if err := tx.Model(&progress).
					UpdateColumn("status", models.ProgressCompleted).Error; err != nil {
					return err
				}
			}
			return tx.Model(&models.User{}).Where("id = ?", userID).
				Select("xp").Scan(&totalXP).Error
		}

		if progress.StartedAt == nil {
			return gamification.ErrInvalidInterval
		}

		now := time.Now()
		xp, err := gamification.ActivityXP(*progress.StartedAt, now)
		if err != nil {
			return err
		}

		progress.Status = models.ProgressCompleted
		progress.CompletedAt = &now
		progress.XPEarned = xp
		progress.Attempts++
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("xp", gorm.Expr("xp + ?", xp)).Error; err != nil {
			return err
		}

		xpEarned = xp
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Select("xp").Scan(&totalXP).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.NotFound(c, "Activity was never started")
	case errors.Is(err, gamification.ErrInvalidInterval):
		return utils.BadRequest(c, "Completion time is before start time")
	case err != nil:
		return utils.InternalServerError(c, "Could not complete activity")
	}

	message := "Activity completed"
	if alreadyCompleted {
		message = "Activity already completed"
	} else {
		utils.ActivitiesCompleted.WithLabelValues(activity.Kind).Inc()
		utils.XPAwarded.Add(float64(xpEarned))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message":   message,
		"xp_earned": xpEarned,
		"total_xp":  totalXP,
	})
}

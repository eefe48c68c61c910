package controllers

import (
	"time"

	"github.com/ViniMagaa/cyberlevel-sub001/backend/config"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/gamification"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/models"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ResponsibleController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewResponsibleController(db *gorm.DB, cfg *config.Config) *ResponsibleController {
	return &ResponsibleController{DB: db, Cfg: cfg}
}

// GetLearners godoc
// @Summary List linked learners
// @Description Returns the learners linked to the responsible account, with progress summaries
// @Tags responsible
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /responsible/learners [get]
func (rc *ResponsibleController) GetLearners(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var learners []models.User
	if err := rc.DB.Where("responsible_id = ?", userID).
		Find(&learners).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch learners")
	}

	now := time.Now()
	result := make([]fiber.Map, 0, len(learners))
	for i := range learners {
		learner := &learners[i]
		completions := completionTimes(rc.DB, learner.ID)
		streak := gamification.Streak(completions, userLocation(learner, rc.Cfg), now)

		lastActivity := ""
		if len(completions) > 0 {
			var progress models.ActivityProgress
			if err := rc.DB.Where("user_id = ? AND status = ?", learner.ID, models.ProgressCompleted).
				Order("completed_at DESC").
				First(&progress).Error; err == nil {
				var activity models.Activity
				if err := rc.DB.First(&activity, progress.ActivityID).Error; err == nil {
					lastActivity = activity.Title
				}
			}
		}

		var lastLogin models.LoginHistory
		rc.DB.Where("user_id = ?", learner.ID).
			Order("login_time DESC").
			First(&lastLogin)

		result = append(result, fiber.Map{
			"id":              learner.ID,
			"username":        learner.Username,
			"age_group":       learner.AgeGroup,
			"avatar_url":      learner.AvatarURL,
			"xp":              learner.XP,
			"streak":          streak.Streak,
			"completed_today": streak.CompletedToday,
			"last_activity":   lastActivity,
			"last_login":      lastLogin.LoginTime,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"learners": result,
	})
}

// LinkLearner godoc
// @Summary Link a learner
// @Description Links a learner account to the responsible account by username
// @Tags responsible
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /responsible/learners [post]
func (rc *ResponsibleController) LinkLearner(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Username string `json:"username"`
	}

	if err := c.BodyParser(&input); err != nil || input.Username == "" {
		return utils.BadRequest(c, "Username is required")
	}

	var learner models.User
	if err := rc.DB.Where("username = ? AND role = ?", input.Username, "learner").
		First(&learner).Error; err != nil {
		return utils.NotFound(c, "Learner not found")
	}

	if learner.ResponsibleID != nil {
		return utils.BadRequest(c, "Learner is already linked to a responsible")
	}

	learner.ResponsibleID = &userID
	if err := rc.DB.Save(&learner).Error; err != nil {
		return utils.InternalServerError(c, "Could not link learner")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Learner linked",
		"learner": fiber.Map{
			"id":       learner.ID,
			"username": learner.Username,
		},
	})
}

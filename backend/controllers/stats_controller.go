package controllers

import (
	"strconv"
	"time"

	"github.com/ViniMagaa/cyberlevel-sub001/backend/config"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/gamification"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/models"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStatsController(db *gorm.DB, cfg *config.Config) *StatsController {
	return &StatsController{DB: db, Cfg: cfg}
}

// GetDashboard godoc
// @Summary Get learner dashboard
// @Description Returns the caller's current level, streak, time spent, ranking and weekly activity
// @Tags stats
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stats/dashboard [get]
func (sc *StatsController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	loc := userLocation(&user, sc.Cfg)
	now := time.Now()

	var progresses []models.ActivityProgress
	if err := sc.DB.Where("user_id = ? AND status = ? AND completed_at IS NOT NULL",
		userID, models.ProgressCompleted).
		Order("completed_at DESC").
		Find(&progresses).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch progress data")
	}

	// Current level: most recent completion and its parent module.
	currentLevel := fiber.Map{}
	if len(progresses) > 0 {
		var activity models.Activity
		if err := sc.DB.First(&activity, progresses[0].ActivityID).Error; err == nil {
			var module models.Module
			sc.DB.First(&module, activity.ModuleID)

			var moduleTotal int64
			sc.DB.Model(&models.Activity{}).
				Where("module_id = ?", module.ID).
				Count(&moduleTotal)

			var moduleCompleted int64
			sc.DB.Model(&models.ActivityProgress{}).
				Joins("JOIN activities ON activities.id = activity_progresses.activity_id").
				Where("activity_progresses.user_id = ? AND activity_progresses.status = ? AND activities.module_id = ?",
					userID, models.ProgressCompleted, module.ID).
				Count(&moduleCompleted)

			currentLevel = fiber.Map{
				"activity":         activity.Title,
				"module":           module.Title,
				"archetype":        module.Archetype,
				"module_completed": moduleCompleted,
				"module_total":     moduleTotal,
			}
		}
	}

	intervals := make([]gamification.Interval, 0, len(progresses))
	completions := make([]time.Time, 0, len(progresses))
	for i := range progresses {
		intervals = append(intervals, gamification.Interval{
			StartedAt:   progresses[i].StartedAt,
			CompletedAt: progresses[i].CompletedAt,
		})
		completions = append(completions, *progresses[i].CompletedAt)
	}

	totalTime := gamification.TotalTime(intervals)
	streak := gamification.Streak(completions, loc, now)
	weekly := gamification.WeeklySummary(completions, loc, now)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"current_level": currentLevel,
		"time_spent": fiber.Map{
			"hours":   int(totalTime.Hours()),
			"minutes": int(totalTime.Minutes()) % 60,
		},
		"streak":          streak.Streak,
		"completed_today": streak.CompletedToday,
		"rank_position":   sc.rankPosition(&user),
		"total_xp":        user.XP,
		"weekly_activity": weekly,
	})
}

// GetRanking godoc
// @Summary Get age-group ranking
// @Description Returns the XP leaderboard for the caller's age group
// @Tags stats
// @Accept json
// @Produce json
// @Param limit query int false "Leaderboard size" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stats/ranking [get]
func (sc *StatsController) GetRanking(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	var top []models.User
	if err := sc.DB.Where("age_group = ?", user.AgeGroup).
		Order("xp DESC, id ASC").
		Limit(limit).
		Find(&top).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch ranking")
	}

	entries := make([]fiber.Map, 0, len(top))
	for i, u := range top {
		entries = append(entries, fiber.Map{
			"position":   i + 1,
			"username":   u.Username,
			"avatar_url": u.AvatarURL,
			"xp":         u.XP,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"age_group": user.AgeGroup,
		"ranking":   entries,
		"position":  sc.rankPosition(&user),
	})
}

// rankPosition is the 1-based position of a user within their age group,
// ordered by XP descending with user id as the tie-break.
func (sc *StatsController) rankPosition(user *models.User) int {
	var ahead int64
	sc.DB.Model(&models.User{}).
		Where("age_group = ? AND (xp > ? OR (xp = ? AND id < ?))",
			user.AgeGroup, user.XP, user.XP, user.ID).
		Count(&ahead)
	return int(ahead) + 1
}

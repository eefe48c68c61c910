package controllers

import (
	"strconv"

	"github.com/ViniMagaa/cyberlevel-sub001/backend/config"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/models"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ModuleController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewModuleController(db *gorm.DB, cfg *config.Config) *ModuleController {
	return &ModuleController{DB: db, Cfg: cfg}
}

// GetModules godoc
// @Summary List learning modules
// @Description Returns modules for the caller's age group with completion ratios
// @Tags modules
// @Accept json
// @Produce json
// @Param group query string false "Age group override (admin only view)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /modules [get]
func (mc *ModuleController) GetModules(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := mc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	group := c.Query("group", user.AgeGroup)

	query := mc.DB.Model(&models.Module{}).Order("sequence_order ASC")
	if group != "" {
		query = query.Where("age_group = ?", group)
	}

	var modules []models.Module
	if err := query.Find(&modules).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch modules")
	}

	result := make([]fiber.Map, 0, len(modules))
	for _, module := range modules {
		var total int64
		mc.DB.Model(&models.Activity{}).Where("module_id = ?", module.ID).Count(&total)

		var completed int64
		mc.DB.Model(&models.ActivityProgress{}).
			Joins("JOIN activities ON activities.id = activity_progresses.activity_id").
			Where("activity_progresses.user_id = ? AND activity_progresses.status = ? AND activities.module_id = ?",
				userID, models.ProgressCompleted, module.ID).
			Count(&completed)

		result = append(result, fiber.Map{
			"id":         module.ID,
			"title":      module.Title,
			"short_desc": module.ShortDesc,
			"archetype":  module.Archetype,
			"age_group":  module.AgeGroup,
			"logo_url":   module.LogoURL,
			"completed":  completed,
			"total":      total,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"modules": result,
	})
}

// GetModuleDetails godoc
// @Summary Get module details
// @Description Returns a module's activities with the caller's status on each
// @Tags modules
// @Accept json
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /modules/{id} [get]
func (mc *ModuleController) GetModuleDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := mc.DB.Preload("Activities", func(db *gorm.DB) *gorm.DB {
		return db.Order("activities.sequence_order ASC")
	}).First(&module, moduleID).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}

	var progresses []models.ActivityProgress
	mc.DB.Joins("JOIN activities ON activities.id = activity_progresses.activity_id").
		Where("activity_progresses.user_id = ? AND activities.module_id = ?", userID, moduleID).
		Find(&progresses)

	statusByActivity := make(map[uint]models.ActivityProgress, len(progresses))
	for _, p := range progresses {
		statusByActivity[p.ActivityID] = p
	}

	activities := make([]fiber.Map, 0, len(module.Activities))
	for _, activity := range module.Activities {
		status := models.ProgressNotStarted
		xpEarned := 0
		if p, ok := statusByActivity[activity.ID]; ok {
			status = p.Status
			xpEarned = p.XPEarned
		}
		activities = append(activities, fiber.Map{
			"id":          activity.ID,
			"title":       activity.Title,
			"description": activity.Description,
			"kind":        activity.Kind,
			"status":      status,
			"xp_earned":   xpEarned,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          module.ID,
		"title":       module.Title,
		"description": module.Description,
		"archetype":   module.Archetype,
		"age_group":   module.AgeGroup,
		"activities":  activities,
	})
}

type ModuleRequest struct {
	Title         string `json:"title" validate:"required"`
	ShortDesc     string `json:"short_desc"`
	Description   string `json:"description"`
	Archetype     string `json:"archetype"`
	AgeGroup      string `json:"age_group" validate:"required,oneof=child teen"`
	LogoURL       string `json:"logo_url"`
	SequenceOrder int    `json:"sequence_order"`
}

// CreateModule godoc
// @Summary Create a module
// @Description Creates a learning module (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param module body ModuleRequest true "Module data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/modules [post]
func (mc *ModuleController) CreateModule(c *fiber.Ctx) error {
	var input ModuleRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	module := models.Module{
		Title:         input.Title,
		ShortDesc:     input.ShortDesc,
		Description:   input.Description,
		Archetype:     input.Archetype,
		AgeGroup:      input.AgeGroup,
		LogoURL:       input.LogoURL,
		SequenceOrder: input.SequenceOrder,
	}

	if err := mc.DB.Create(&module).Error; err != nil {
		return utils.InternalServerError(c, "Could not create module")
	}

	return utils.Created(c, fiber.Map{
		"message": "Module created",
		"module":  module,
	})
}

// UpdateModule godoc
// @Summary Update a module
// @Description Updates module fields (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/modules/{id} [put]
func (mc *ModuleController) UpdateModule(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := mc.DB.First(&module, moduleID).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}

	var input ModuleRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		module.Title = input.Title
	}
	if input.ShortDesc != "" {
		module.ShortDesc = input.ShortDesc
	}
	if input.Description != "" {
		module.Description = input.Description
	}
	if input.Archetype != "" {
		module.Archetype = input.Archetype
	}
	if input.AgeGroup != "" {
		module.AgeGroup = input.AgeGroup
	}
	if input.LogoURL != "" {
		module.LogoURL = input.LogoURL
	}
	if input.SequenceOrder != 0 {
		module.SequenceOrder = input.SequenceOrder
	}

	if err := mc.DB.Save(&module).Error; err != nil {
		return utils.InternalServerError(c, "Could not update module")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Module updated",
		"module":  module,
	})
}

type ActivityRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Kind          string `json:"kind" validate:"required,oneof=quiz fake_news password_challenge info_text chat_simulation match_pairs"`
	Content       string `json:"content"`
	SequenceOrder int    `json:"sequence_order"`
}

// AddActivity godoc
// @Summary Add an activity to a module
// @Description Creates an activity inside a module (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Module ID"
// @Param activity body ActivityRequest true "Activity data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/modules/{id}/activities [post]
func (mc *ModuleController) AddActivity(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := mc.DB.First(&module, moduleID).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}

	var input ActivityRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	activity := models.Activity{
		ModuleID:      module.ID,
		Title:         input.Title,
		Description:   input.Description,
		Kind:          input.Kind,
		Content:       input.Content,
		SequenceOrder: input.SequenceOrder,
	}

	if err := mc.DB.Create(&activity).Error; err != nil {
		return utils.InternalServerError(c, "Could not create activity")
	}

	return utils.Created(c, fiber.Map{
		"message":  "Activity created",
		"activity": activity,
	})
}

// UpdateActivity godoc
// @Summary Update an activity
// @Description Updates activity fields (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Module ID"
// @Param activityId path int true "Activity ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/modules/{id}/activities/{activityId} [put]
func (mc *ModuleController) UpdateActivity(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	activityID, err := strconv.Atoi(c.Params("activityId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid activity ID")
	}

	var activity models.Activity
	if err := mc.DB.Where("module_id = ?", moduleID).
		First(&activity, activityID).Error; err != nil {
		return utils.NotFound(c, "Activity not found")
	}

	var input ActivityRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		activity.Title = input.Title
	}
	if input.Description != "" {
		activity.Description = input.Description
	}
	if input.Kind != "" {
		activity.Kind = input.Kind
	}
	if input.Content != "" {
		activity.Content = input.Content
	}
	if input.SequenceOrder != 0 {
		activity.SequenceOrder = input.SequenceOrder
	}

	if err := mc.DB.Save(&activity).Error; err != nil {
		return utils.InternalServerError(c, "Could not update activity")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message":  "Activity updated",
		"activity": activity,
	})
}

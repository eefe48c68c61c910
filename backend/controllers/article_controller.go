package controllers

import (
	"strconv"

	"github.com/ViniMagaa/cyberlevel-sub001/backend/config"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/models"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ArticleController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewArticleController(db *gorm.DB, cfg *config.Config) *ArticleController {
	return &ArticleController{DB: db, Cfg: cfg}
}

// GetArticles godoc
// @Summary List published articles
// @Description Returns paginated published articles, optionally filtered by audience
// @Tags articles
// @Accept json
// @Produce json
// @Param audience query string false "Filter by audience (child|teen|responsible)"
// @Param search query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} utils.PaginatedResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /articles [get]
func (ac *ArticleController) GetArticles(c *fiber.Ctx) error {
	audience := c.Query("audience")
	search := c.Query("search")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	query := ac.DB.Model(&models.Article{}).Where("published = ?", true)

	if audience != "" {
		query = query.Where("audience = ?", audience)
	}
	if search != "" {
		query = query.Where("title LIKE ? OR summary LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var articles []models.Article
	if err := query.Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&articles).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch articles")
	}

	result := make([]fiber.Map, 0, len(articles))
	for _, article := range articles {
		result = append(result, fiber.Map{
			"id":         article.ID,
			"title":      article.Title,
			"slug":       article.Slug,
			"summary":    article.Summary,
			"cover_url":  article.CoverURL,
			"audience":   article.Audience,
			"created_at": article.CreatedAt,
		})
	}

	return utils.Paginate(c, result, total, page, pageSize)
}

// GetArticleBySlug godoc
// @Summary Get an article
// @Description Returns one published article by slug
// @Tags articles
// @Accept json
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /articles/{slug} [get]
func (ac *ArticleController) GetArticleBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var article models.Article
	if err := ac.DB.Where("slug = ? AND published = ?", slug, true).
		First(&article).Error; err != nil {
		return utils.NotFound(c, "Article not found")
	}

	return utils.Success(c, fiber.StatusOK, article)
}

type ArticleRequest struct {
	Title     string `json:"title" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	Summary   string `json:"summary"`
	Content   string `json:"content" validate:"required"`
	CoverURL  string `json:"cover_url"`
	Audience  string `json:"audience" validate:"required,oneof=child teen responsible"`
	Published bool   `json:"published"`
}

// CreateArticle godoc
// @Summary Create an article
// @Description Creates an article (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param article body ArticleRequest true "Article data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/articles [post]
func (ac *ArticleController) CreateArticle(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input ArticleRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	article := models.Article{
		Title:     input.Title,
		Slug:      input.Slug,
		Summary:   input.Summary,
		Content:   input.Content,
		CoverURL:  input.CoverURL,
		Audience:  input.Audience,
		AuthorID:  userID,
		Published: input.Published,
	}

	if err := ac.DB.Create(&article).Error; err != nil {
		return utils.InternalServerError(c, "Could not create article")
	}

	return utils.Created(c, fiber.Map{
		"message": "Article created",
		"article": article,
	})
}

// UpdateArticle godoc
// @Summary Update an article
// @Description Updates article fields (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/articles/{id} [put]
func (ac *ArticleController) UpdateArticle(c *fiber.Ctx) error {
	articleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid article ID")
	}

	var article models.Article
	if err := ac.DB.First(&article, articleID).Error; err != nil {
		return utils.NotFound(c, "Article not found")
	}

	var input struct {
		Title     string `json:"title"`
		Summary   string `json:"summary"`
		Content   string `json:"content"`
		CoverURL  string `json:"cover_url"`
		Audience  string `json:"audience"`
		Published *bool  `json:"published"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		article.Title = input.Title
	}
	if input.Summary != "" {
		article.Summary = input.Summary
	}
	if input.Content != "" {
		article.Content = input.Content
	}
	if input.CoverURL != "" {
		article.CoverURL = input.CoverURL
	}
	if input.Audience != "" {
		article.Audience = input.Audience
	}
	if input.Published != nil {
		article.Published = *input.Published
	}

	if err := ac.DB.Save(&article).Error; err != nil {
		return utils.InternalServerError(c, "Could not update article")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Article updated",
		"article": article,
	})
}

// DeleteArticle godoc
// @Summary Delete an article
// @Description Removes an article (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/articles/{id} [delete]
func (ac *ArticleController) DeleteArticle(c *fiber.Ctx) error {
	articleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid article ID")
	}

	var article models.Article
	if err := ac.DB.First(&article, articleID).Error; err != nil {
		return utils.NotFound(c, "Article not found")
	}

	if err := ac.DB.Delete(&article).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete article")
	}

	return utils.NoContent(c)
}

package controllers

import (
	"errors"
	"strconv"

	"github.com/ViniMagaa/cyberlevel-sub001/backend/config"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/models"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStoreController(db *gorm.DB, cfg *config.Config) *StoreController {
	return &StoreController{DB: db, Cfg: cfg}
}

var errOutOfStock = errors.New("product out of stock")

// GetProducts godoc
// @Summary List store products
// @Description Returns active products
// @Tags store
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /store/products [get]
func (sc *StoreController) GetProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := sc.DB.Where("active = ?", true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch products")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"products": products,
	})
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder godoc
// @Summary Place an order
// @Description Creates an order, reserving stock atomically
// @Tags store
// @Accept json
// @Produce json
// @Param order body OrderRequest true "Order items"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /store/orders [post]
func (sc *StoreController) CreateOrder(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input OrderRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	order := models.Order{
		Reference: uuid.NewString(),
		UserID:    userID,
		Status:    "pending",
	}

	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range input.Items {
			var product models.Product
			if err := tx.Where("active = ?", true).
				First(&product, item.ProductID).Error; err != nil {
				return err
			}
			if product.Stock < item.Quantity {
				return errOutOfStock
			}

			if err := tx.Model(&product).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID:      product.ID,
				ProductName:    product.Name,
				UnitPriceCents: product.PriceCents,
				Quantity:       item.Quantity,
			})
			order.TotalCents += product.PriceCents * item.Quantity
		}

		return tx.Create(&order).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.NotFound(c, "Product not found")
	case errors.Is(err, errOutOfStock):
		return utils.BadRequest(c, "Product out of stock")
	case err != nil:
		return utils.InternalServerError(c, "Could not place order")
	}

	utils.OrdersPlaced.Inc()

	return utils.Created(c, fiber.Map{
		"message": "Order placed",
		"order":   order,
	})
}

// GetMyOrders godoc
// @Summary List own orders
// @Description Returns the caller's orders, most recent first
// @Tags store
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /store/orders [get]
func (sc *StoreController) GetMyOrders(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var orders []models.Order
	if err := sc.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch orders")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"orders": orders,
	})
}

type ProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents" validate:"required,min=1"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock" validate:"min=0"`
}

// CreateProduct godoc
// @Summary Create a product
// @Description Adds a product to the store (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/store/products [post]
func (sc *StoreController) CreateProduct(c *fiber.Ctx) error {
	var input ProductRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		Active:      true,
	}

	if err := sc.DB.Create(&product).Error; err != nil {
		return utils.InternalServerError(c, "Could not create product")
	}

	return utils.Created(c, fiber.Map{
		"message": "Product created",
		"product": product,
	})
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Updates product fields (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/store/products/{id} [put]
func (sc *StoreController) UpdateProduct(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid product ID")
	}

	var product models.Product
	if err := sc.DB.First(&product, productID).Error; err != nil {
		return utils.NotFound(c, "Product not found")
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		PriceCents  *int   `json:"price_cents"`
		ImageURL    string `json:"image_url"`
		Stock       *int   `json:"stock"`
		Active      *bool  `json:"active"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := sc.DB.Save(&product).Error; err != nil {
		return utils.InternalServerError(c, "Could not update product")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Product updated",
		"product": product,
	})
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Moves an order through its fulfillment states (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/store/orders/{id}/status [put]
func (sc *StoreController) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid order ID")
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=pending paid shipped cancelled"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var order models.Order
	if err := sc.DB.First(&order, orderID).Error; err != nil {
		return utils.NotFound(c, "Order not found")
	}

	order.Status = input.Status
	if err := sc.DB.Save(&order).Error; err != nil {
		return utils.InternalServerError(c, "Could not update order")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Order updated",
		"order":   order,
	})
}

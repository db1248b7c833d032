package handlers

import (
	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: middleware.NewProductValidator(),
	}
}

// RegisterRoutes registers the product routes under /products.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/stats/category", h.HandleCategoryStats)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", middleware.ValidateProduct(h.validate), h.HandleCreateProduct)
	productRoutes.Put("/:id", middleware.ValidateProduct(h.validate), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists products filtered by category and search, one page at a time.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page, err := h.service.ListProducts(services.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     services.ParsePageParam(c.Query("page"), services.DefaultPage),
		Limit:    services.ParsePageParam(c.Query("limit"), 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product from a payload already checked by ValidateProduct.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	fields := c.Locals(middleware.ProductFieldsKey).(models.ProductFields)
	product, err := h.service.CreateProduct(fields)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct merges the payload into an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	fields := c.Locals(middleware.ProductFieldsKey).(models.ProductFields)
	product, err := h.service.UpdateProduct(c.Params("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCategoryStats returns the number of products per category.
func (h *ProductHandler) HandleCategoryStats(c *fiber.Ctx) error {
	stats, err := h.service.CategoryStats()
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

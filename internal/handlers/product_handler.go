package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
	"tienda/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	msgProductNotFound  = "Producto no Econtrado"
	msgInvalidID        = "ID No Valido"
	msgNameEmpty        = "No se Aceptan Datos Valicio, Productos"
	msgPriceNotNumeric  = "Solo Numero, Pecio"
	msgPriceEmpty       = "No se Aceptan Datos Vacios, Precio"
	msgPriceNotPositive = "No valido, Precio"
	msgInvalidAvailable = "Valor de Disponibilidad no Valido"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

func idRule() *validation.Chain {
	return validation.Param("id").IsInt().WithMessage(msgInvalidID)
}

func productRules() []*validation.Chain {
	return []*validation.Chain{
		validation.Body("name").
			NotEmpty().WithMessage(msgNameEmpty),
		validation.Body("price").
			IsNumeric().WithMessage(msgPriceNotNumeric).
			NotEmpty().WithMessage(msgPriceEmpty).
			Custom(validation.IsPositiveAt(models.PriceScale)).WithMessage(msgPriceNotPositive),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")

	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id",
		validation.Validate(idRule()),
		h.HandleGetProductByID,
	)
	productRoutes.Post("/",
		validation.Validate(productRules()...),
		h.HandleCreateProduct,
	)

	updateRules := append([]*validation.Chain{idRule()}, productRules()...)
	updateRules = append(updateRules,
		validation.Body("availability").IsBoolean().WithMessage(msgInvalidAvailable),
	)
	productRoutes.Put("/:id",
		validation.Validate(updateRules...),
		h.HandleUpdateProduct,
	)
	productRoutes.Patch("/:id",
		validation.Validate(idRule()),
		h.HandleToggleAvailability,
	)
	productRoutes.Delete("/:id",
		validation.Validate(idRule()),
		h.HandleDeleteProduct,
	)
}

// HandleGetProducts lists every product, cheapest first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a new product from the validated body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, err := productInput(c)
	if err != nil {
		return err
	}
	product, err := h.service.CreateProduct(input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces every mutable field of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}
	input, err := productInput(c)
	if err != nil {
		return err
	}
	product, err := h.service.UpdateProduct(id, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleToggleAvailability flips the availability of an existing product.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}
	product, err := h.service.ToggleAvailability(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}
	product, err := h.service.DeleteProduct(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"data": fmt.Sprintf("Producto: %s Eliminado", product.Name),
	})
}

// fail maps a missing product to 404 and hands anything else to the app's
// error handler.
func (h *ProductHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return notFound(c)
	}
	return err
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msgProductNotFound})
}

// productID parses the already validated id parameter. Values that cannot be a
// primary key, such as zero, negatives or overflowing numbers, report false.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func productInput(c *fiber.Ctx) (services.ProductInput, error) {
	body, err := validation.RequestBody(c)
	if err != nil {
		return services.ProductInput{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	price, err := decimal.NewFromString(validation.ToString(body["price"]))
	if err != nil {
		return services.ProductInput{}, fiber.NewError(fiber.StatusBadRequest, msgPriceNotNumeric)
	}

	input := services.ProductInput{
		Name:  validation.ToString(body["name"]),
		Price: price,
	}
	if v, ok := body["availability"]; ok && v != nil {
		available := validation.IsTruthyFlag(v)
		input.Availability = &available
	}
	return input, nil
}

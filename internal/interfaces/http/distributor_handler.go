package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/application/usecase"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/pkg/validator"
)

// DistributorHandler handles distributor HTTP requests (protected).
type DistributorHandler struct {
	uc *usecase.DistributorUseCase
}

// NewDistributorHandler builds the handler.
func NewDistributorHandler(uc *usecase.DistributorUseCase) *DistributorHandler {
	return &DistributorHandler{uc: uc}
}

// Create godoc
// @Summary      Register a distributor
// @Tags         distributors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DistributorRequest  true  "Distributor data"
// @Success      201   {object}  dto.DistributorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/distributors [post]
func (h *DistributorHandler) Create(c *fiber.Ctx) error {
	var in dto.DistributorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "distributor already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get distributor by ID
// @Tags         distributors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Distributor ID"
// @Success      200  {object}  dto.DistributorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distributors/{id} [get]
func (h *DistributorHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "distributor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List distributors
// @Tags         distributors
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.DistributorResponse
// @Router       /api/distributors [get]
func (h *DistributorHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a distributor
// @Tags         distributors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Distributor ID"
// @Param        body  body  dto.DistributorRequest  true  "Data to update"
// @Success      200   {object}  dto.DistributorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/distributors/{id} [put]
func (h *DistributorHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.DistributorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "distributor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a distributor
// @Tags         distributors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Distributor ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distributors/{id} [delete]
func (h *DistributorHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "distributor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

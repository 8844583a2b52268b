package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/application/rates"
)

// RatesHandler maneja las sesiones de cambio masivo de tarifas (protegido).
// Todas las rutas operan sobre una sesión identificada por :sid y ligada a la
// sucursal del token.
type RatesHandler struct {
	uc *rates.BulkRateUseCase
}

// NewRatesHandler construye el handler.
func NewRatesHandler(uc *rates.BulkRateUseCase) *RatesHandler {
	return &RatesHandler{uc: uc}
}

// StartSession godoc
// @Summary      Iniciar una sesión de cambio masivo
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BulkSessionResponse
// @Router       /api/rates/bulk [post]
func (h *RatesHandler) StartSession(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.StartSession(branchID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSession godoc
// @Summary      Estado de una sesión de cambio masivo
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.BulkSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rates/bulk/{sid} [get]
func (h *RatesHandler) GetSession(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.GetSession(branchID, c.Params("sid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelSession godoc
// @Summary      Cancelar una sesión de cambio masivo
// @Tags         rates
// @Security     Bearer
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rates/bulk/{sid} [delete]
func (h *RatesHandler) CancelSession(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	if err := h.uc.CancelSession(branchID, c.Params("sid")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleArticle godoc
// @Summary      Alternar un artículo en la selección
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string  true  "ID de la sesión"
// @Param        body  body  dto.ToggleRequest  true  "ID del artículo"
// @Success      200   {object}  dto.BulkSessionResponse
// @Failure      409   {object}  dto.ErrorResponse  "la sesión ya aplicó cambios"
// @Router       /api/rates/bulk/{sid}/articles/toggle [post]
func (h *RatesHandler) ToggleArticle(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var in dto.ToggleRequest
	if err := c.BodyParser(&in); err != nil || in.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id es requerido"})
	}
	out, err := h.uc.ToggleArticle(branchID, c.Params("sid"), in.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleCustomer godoc
// @Summary      Alternar un cliente en la selección
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string  true  "ID de la sesión"
// @Param        body  body  dto.ToggleRequest  true  "ID del cliente"
// @Success      200   {object}  dto.BulkSessionResponse
// @Router       /api/rates/bulk/{sid}/customers/toggle [post]
func (h *RatesHandler) ToggleCustomer(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var in dto.ToggleRequest
	if err := c.BodyParser(&in); err != nil || in.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id es requerido"})
	}
	out, err := h.uc.ToggleCustomer(branchID, c.Params("sid"), in.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetFilters godoc
// @Summary      Actualizar los filtros de búsqueda de la sesión
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string  true  "ID de la sesión"
// @Param        body  body  dto.SelectionFiltersRequest  true  "Filtros"
// @Success      200   {object}  dto.BulkSessionResponse
// @Router       /api/rates/bulk/{sid}/filters [put]
func (h *RatesHandler) SetFilters(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var in dto.SelectionFiltersRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetFilters(branchID, c.Params("sid"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SelectAllArticles godoc
// @Summary      Seleccionar todos los artículos visibles con el filtro vigente
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.BulkSessionResponse
// @Router       /api/rates/bulk/{sid}/articles/select-all [post]
func (h *RatesHandler) SelectAllArticles(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.SelectAllArticles(branchID, c.Params("sid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SelectAllCustomers godoc
// @Summary      Seleccionar todos los clientes visibles con el filtro vigente
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.BulkSessionResponse
// @Router       /api/rates/bulk/{sid}/customers/select-all [post]
func (h *RatesHandler) SelectAllCustomers(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.SelectAllCustomers(branchID, c.Params("sid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearArticles godoc
// @Summary      Vaciar la selección de artículos
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.BulkSessionResponse
// @Router       /api/rates/bulk/{sid}/articles [delete]
func (h *RatesHandler) ClearArticles(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.ClearArticles(branchID, c.Params("sid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearCustomers godoc
// @Summary      Vaciar la selección de clientes
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.BulkSessionResponse
// @Router       /api/rates/bulk/{sid}/customers [delete]
func (h *RatesHandler) ClearCustomers(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.ClearCustomers(branchID, c.Params("sid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Configure godoc
// @Summary      Configurar la operación masiva de la sesión
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string  true  "ID de la sesión"
// @Param        body  body  dto.BulkConfigRequest  true  "Operación y parámetros"
// @Success      200   {object}  dto.BulkSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rates/bulk/{sid}/config [put]
func (h *RatesHandler) Configure(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var in dto.BulkConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Configure(branchID, c.Params("sid"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Previsualizar los cambios de la operación configurada
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.BulkPreviewResponse
// @Failure      422  {object}  dto.ErrorResponse  "selección vacía u operación sin configurar"
// @Router       /api/rates/bulk/{sid}/preview [post]
func (h *RatesHandler) Preview(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.Preview(branchID, c.Params("sid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      Aplicar los cambios previsualizados
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.BulkApplyResponse
// @Failure      409  {object}  dto.ErrorResponse  "la sesión ya aplicó cambios"
// @Router       /api/rates/bulk/{sid}/apply [post]
func (h *RatesHandler) Apply(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.Apply(branchID, c.Params("sid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

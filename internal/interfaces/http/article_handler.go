package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/application/usecase"
)

// ArticleHandler maneja las peticiones HTTP para Article (protegido).
type ArticleHandler struct {
	uc     *usecase.ArticleUseCase
	rateUC *usecase.RateQueryUseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase, rateUC *usecase.RateQueryUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc, rateUC: rateUC}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var in dto.CreateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.UnitOfMeasure == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y unit_of_measure son requeridos"})
	}
	out, err := h.uc.Create(branchID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.GetByID(branchID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ArticleListResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var page dto.PageRequest
	page.Limit = c.QueryInt("limit", 20)
	page.Offset = c.QueryInt("offset", 0)
	out, err := h.uc.List(branchID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateArticleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var in dto.UpdateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(branchID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         articles
// @Security     Bearer
// @Param        id  path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "el artículo tiene guías asociadas"
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	if err := h.uc.Delete(branchID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRates godoc
// @Summary      Listar overrides de tarifa de un artículo
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {array}  dto.CustomerRateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/rates [get]
func (h *ArticleHandler) ListRates(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.rateUC.ListByArticle(branchID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetDraft godoc
// @Summary      Obtener el borrador del formulario de artículo
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ArticleDraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/draft [get]
func (h *ArticleHandler) GetDraft(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.GetDraft(branchID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveDraft godoc
// @Summary      Guardar el borrador del formulario de artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/articles/draft [put]
func (h *ArticleHandler) SaveDraft(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	if err := h.uc.SaveDraft(branchID, GetUserID(c), c.Body()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearDraft godoc
// @Summary      Descartar el borrador del formulario de artículo
// @Tags         articles
// @Security     Bearer
// @Success      204
// @Router       /api/articles/draft [delete]
func (h *ArticleHandler) ClearDraft(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	if err := h.uc.ClearDraft(branchID, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

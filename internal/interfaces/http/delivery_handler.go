package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appdelivery "github.com/jhoicas/Despacho-api/internal/application/delivery"
	"github.com/jhoicas/Despacho-api/internal/application/dto"
)

// DeliveryHandler maneja las entregas registradas y la nota de entrega en PDF.
type DeliveryHandler struct {
	captureUC *appdelivery.CaptureUseCase
	noteUC    *appdelivery.NoteUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(captureUC *appdelivery.CaptureUseCase, noteUC *appdelivery.NoteUseCase) *DeliveryHandler {
	return &DeliveryHandler{captureUC: captureUC, noteUC: noteUC}
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.DeliveryListResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var page dto.PageRequest
	page.Limit = c.QueryInt("limit", 20)
	page.Offset = c.QueryInt("offset", 0)
	out, err := h.captureUC.List(branchID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeliveryNote godoc
// @Summary      Descargar la nota de entrega en PDF
// @Tags         deliveries
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la entrega"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/note.pdf [get]
func (h *DeliveryHandler) DeliveryNote(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	id := c.Params("id")
	pdfBytes, err := h.noteUC.Generate(branchID, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="nota-entrega-%s.pdf"`, id))
	return c.Send(pdfBytes)
}

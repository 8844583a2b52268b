package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Despacho-api/internal/application/export"
)

// ExportHandler maneja la exportación de la hoja de tarifas.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// RateSheetXML godoc
// @Summary      Exportar la hoja de tarifas en XML
// @Tags         export
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {file}  binary
// @Router       /api/export/ratesheet.xml [get]
func (h *ExportHandler) RateSheetXML(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.RateSheetXML(branchID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ratesheet.xml"`)
	return c.Send(out)
}

// RateSheetCSV godoc
// @Summary      Exportar la hoja de tarifas en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/export/ratesheet.csv [get]
func (h *ExportHandler) RateSheetCSV(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.uc.RateSheetCSV(branchID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ratesheet.csv"`)
	return c.Send(out)
}

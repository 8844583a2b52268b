package http

import (
	"github.com/gofiber/fiber/v2"

	appdelivery "github.com/jhoicas/Despacho-api/internal/application/delivery"
	"github.com/jhoicas/Despacho-api/internal/application/dto"
)

// BookingHandler maneja las guías de despacho y su prueba de entrega (protegido).
type BookingHandler struct {
	bookingUC *appdelivery.BookingUseCase
	captureUC *appdelivery.CaptureUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(bookingUC *appdelivery.BookingUseCase, captureUC *appdelivery.CaptureUseCase) *BookingHandler {
	return &BookingHandler{bookingUC: bookingUC, captureUC: captureUC}
}

// Create godoc
// @Summary      Crear guía de despacho
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "Datos de la guía"
// @Success      201   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "número de consignación duplicado"
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ConsignmentNo == "" || in.CustomerID == "" || in.ArticleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "consignment_no, customer_id y article_id son requeridos"})
	}
	out, err := h.bookingUC.Create(branchID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener guía por ID
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la guía"
// @Success      200  {object}  dto.BookingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.bookingUC.GetByID(branchID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar guías
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.BookingListResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var page dto.PageRequest
	page.Limit = c.QueryInt("limit", 20)
	page.Offset = c.QueryInt("offset", 0)
	out, err := h.bookingUC.List(branchID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkInTransit godoc
// @Summary      Marcar una guía en tránsito
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la guía"
// @Success      200  {object}  dto.BookingResponse
// @Failure      409  {object}  dto.ErrorResponse  "la guía no está en estado booked"
// @Router       /api/bookings/{id}/transit [post]
func (h *BookingHandler) MarkInTransit(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.bookingUC.MarkInTransit(branchID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CapturePOD godoc
// @Summary      Registrar la prueba de entrega de una guía
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la guía"
// @Param        body  body  dto.CapturePODRequest  true  "Receptor y firma (base64 PNG)"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "la guía ya fue entregada"
// @Router       /api/bookings/{id}/pod [post]
func (h *BookingHandler) CapturePOD(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	var in dto.CapturePODRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ReceiverName == "" || in.SignaturePNG == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "receiver_name y signature_png son requeridos"})
	}
	out, err := h.captureUC.Capture(c.Context(), branchID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPOD godoc
// @Summary      Obtener la prueba de entrega de una guía
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la guía"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/pod [get]
func (h *BookingHandler) GetPOD(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	out, err := h.captureUC.GetByBooking(branchID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/application/production"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
)

// Contratos mínimos que usa el handler; los implementan los casos de uso de production.
type (
	sessionStarter interface {
		Start(ctx context.Context, centerID, userID string, in dto.StartSessionRequest) (*dto.SessionResponse, error)
	}
	sessionAutosaver interface {
		Autosave(ctx context.Context, sessionID, centerID string, in dto.AutosaveRequest) (*dto.AutosaveResponse, error)
	}
	sessionCloser interface {
		Close(ctx context.Context, sessionID, centerID, userID string, in dto.CloseSessionRequest) (*dto.SessionResponse, error)
	}
	sessionQuerier interface {
		Get(ctx context.Context, centerID, id string) (*dto.SessionResponse, error)
		GetByDate(ctx context.Context, centerID, date string) (*dto.SessionResponse, error)
		List(ctx context.Context, centerID string, q production.ListQuery) (*dto.SessionListResponse, error)
	}
	sessionReporter interface {
		SessionPDF(ctx context.Context, centerID, sessionID string) ([]byte, string, error)
	}
)

// SessionHandler endpoints de la jornada de producción (protegido).
type SessionHandler struct {
	start    sessionStarter
	autosave sessionAutosaver
	close    sessionCloser
	query    sessionQuerier
	report   sessionReporter
	log      *logger.Logger
}

// NewSessionHandler construye el handler.
func NewSessionHandler(
	start sessionStarter,
	autosave sessionAutosaver,
	closeUC sessionCloser,
	query sessionQuerier,
	report sessionReporter,
	log *logger.Logger,
) *SessionHandler {
	return &SessionHandler{start: start, autosave: autosave, close: closeUC, query: query, report: report, log: log}
}

// Start godoc
// @Summary      Abrir la jornada del centro
// @Description  Crea la sesión IN_PROGRESS de la fecha (hoy por defecto). El stock inicial por defecto es el stock físico final de la última sesión cerrada.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartSessionRequest  false  "date (YYYY-MM-DD) y stockInitial opcionales"
// @Success      201   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	centerID, userID := CenterScope(c), GetUserID(c)
	if centerID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.StartSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.start.Start(c.Context(), centerID, userID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Autosave godoc
// @Summary      Guardado parcial del formulario
// @Description  Solo se escriben los campos enviados. bouteilles/reservoirs, si vienen, reemplazan la colección. Las lecturas de jauge incompletas quedan en borrador.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la sesión"
// @Param        body  body  dto.AutosaveRequest  true  "Campos parciales"
// @Success      200   {object}  dto.AutosaveResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/autosave [patch]
func (h *SessionHandler) Autosave(c *fiber.Ctx) error {
	centerID := CenterScope(c)
	if centerID == "" {
		return unauthorized(c)
	}
	var in dto.AutosaveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.autosave.Autosave(c.Context(), c.Params("id"), centerID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar la jornada
// @Description  Valida el formulario completo, recalcula reservorios y botellas, concilia stock teórico y físico y pasa la sesión a CLOSED. Nada se guarda si la validación falla.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "Formulario completo"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/close [post]
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	centerID, userID := CenterScope(c), GetUserID(c)
	if centerID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.close.Close(c.Context(), c.Params("id"), centerID, userID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.Get(c.Context(), CenterScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByDate godoc
// @Summary      Sesión del centro para una fecha
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "Fecha YYYY-MM-DD"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sessions/by-date/{date} [get]
func (h *SessionHandler) GetByDate(c *fiber.Ctx) error {
	centerID := CenterScope(c)
	if centerID == "" {
		return unauthorized(c)
	}
	out, err := h.query.GetByDate(c.Context(), centerID, c.Params("date"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de sesiones del centro
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        status  query  string  false  "IN_PROGRESS | CLOSED | ARCHIVED"
// @Param        limit   query  int     false  "Default 20, máx. 100"
// @Param        offset  query  int     false  "Default 0"
// @Success      200  {object}  dto.SessionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	centerID := CenterScope(c)
	if centerID == "" {
		return unauthorized(c)
	}
	q := production.ListQuery{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Status: c.Query("status"),
	}
	q.Limit = c.QueryInt("limit", 20)
	q.Offset = c.QueryInt("offset", 0)
	out, err := h.query.List(c.Context(), centerID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe PDF de una sesión cerrada
// @Tags         sessions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/report.pdf [get]
func (h *SessionHandler) Report(c *fiber.Ctx) error {
	pdf, name, err := h.report.SessionPDF(c.Context(), CenterScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
	return c.Send(pdf)
}

package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/application/production"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	apphttp "github.com/jhoicas/produccion-glp-api/internal/interfaces/http"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
)

// stubSessions implementa todos los contratos del SessionHandler y registra las llamadas.
type stubSessions struct {
	err error

	gotCenter string
	gotUser   string
	gotID     string
	gotStart  dto.StartSessionRequest
	gotSave   dto.AutosaveRequest
	gotClose  dto.CloseSessionRequest
	gotQuery  production.ListQuery
}

func (s *stubSessions) Start(_ context.Context, centerID, userID string, in dto.StartSessionRequest) (*dto.SessionResponse, error) {
	s.gotCenter, s.gotUser, s.gotStart = centerID, userID, in
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionResponse{ID: "s-1", CenterID: centerID, Status: entity.SessionStatusInProgress}, nil
}

func (s *stubSessions) Autosave(_ context.Context, sessionID, centerID string, in dto.AutosaveRequest) (*dto.AutosaveResponse, error) {
	s.gotID, s.gotCenter, s.gotSave = sessionID, centerID, in
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AutosaveResponse{}, nil
}

func (s *stubSessions) Close(_ context.Context, sessionID, centerID, userID string, in dto.CloseSessionRequest) (*dto.SessionResponse, error) {
	s.gotID, s.gotCenter, s.gotUser, s.gotClose = sessionID, centerID, userID, in
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionResponse{ID: sessionID, Status: entity.SessionStatusClosed}, nil
}

func (s *stubSessions) Get(_ context.Context, centerID, id string) (*dto.SessionResponse, error) {
	s.gotCenter, s.gotID = centerID, id
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionResponse{ID: id, CenterID: centerID}, nil
}

func (s *stubSessions) GetByDate(_ context.Context, centerID, date string) (*dto.SessionResponse, error) {
	s.gotCenter = centerID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionResponse{ID: "s-1", Date: date}, nil
}

func (s *stubSessions) List(_ context.Context, centerID string, q production.ListQuery) (*dto.SessionListResponse, error) {
	s.gotCenter, s.gotQuery = centerID, q
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionListResponse{Items: []dto.SessionSummaryResponse{}, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
}

func (s *stubSessions) SessionPDF(_ context.Context, centerID, sessionID string) ([]byte, string, error) {
	s.gotCenter, s.gotID = centerID, sessionID
	if s.err != nil {
		return nil, "", s.err
	}
	return []byte("%PDF-1.3 fake"), "produccion_DKR_2026-03-10.pdf", nil
}

func buildSessionApp(stub *stubSessions) *fiber.App {
	app := fiber.New()
	h := apphttp.NewSessionHandler(stub, stub, stub, stub, stub, logger.Nop())
	api := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret, testIssuer))
	supervisors := apphttp.RequireRole(apphttp.RoleAdmin, apphttp.RoleChefCentre)
	api.Post("/sessions", supervisors, h.Start)
	api.Get("/sessions", h.List)
	api.Get("/sessions/by-date/:date", h.GetByDate)
	api.Get("/sessions/:id", h.GetByID)
	api.Patch("/sessions/:id/autosave", h.Autosave)
	api.Post("/sessions/:id/close", supervisors, h.Close)
	api.Get("/sessions/:id/report.pdf", h.Report)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", tokenForRole(t, role))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSessionHandler_Start(t *testing.T) {
	stub := &stubSessions{}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodPost, "/api/sessions", apphttp.RoleChefCentre, `{"date":"2026-03-10","stockInitial":12.5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, testCenterID, stub.gotCenter)
	assert.Equal(t, testUserID, stub.gotUser)
	assert.Equal(t, "2026-03-10", stub.gotStart.Date)
	require.NotNil(t, stub.gotStart.InitialPhysicalStock)
	assert.True(t, stub.gotStart.InitialPhysicalStock.Equal(decimal.RequireFromString("12.5")))
}

func TestSessionHandler_Start_SinCuerpoUsaDefaults(t *testing.T) {
	stub := &stubSessions{}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodPost, "/api/sessions", apphttp.RoleAdmin, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, stub.gotStart.Date)
	assert.Nil(t, stub.gotStart.InitialPhysicalStock)
}

func TestSessionHandler_Start_OperateurNoPuedeAbrir(t *testing.T) {
	stub := &stubSessions{}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodPost, "/api/sessions", apphttp.RoleOperateur, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, stub.gotCenter, "el caso de uso no debe ejecutarse")
}

func TestSessionHandler_Autosave_Parcial(t *testing.T) {
	stub := &stubSessions{}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodPatch, "/api/sessions/s-1/autosave", apphttp.RoleOperateur,
		`{"butanier":4.25,"appros":{"camion":1.5},"bouteilles":[{"type":"B12","quantity":10}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "s-1", stub.gotID)
	require.NotNil(t, stub.gotSave.Butanier)
	assert.True(t, stub.gotSave.Butanier.Equal(decimal.RequireFromString("4.25")))
	assert.Nil(t, stub.gotSave.Ngabou, "los campos ausentes quedan nil")
	assert.Nil(t, stub.gotSave.Reservoirs, "reservoirs ausente no debe reemplazar la colección")
	require.Len(t, stub.gotSave.Bouteilles, 1)
	assert.Equal(t, "B12", stub.gotSave.Bouteilles[0].Type)
	assert.Contains(t, stub.gotSave.Appros, "camion")
}

func TestSessionHandler_Autosave_CuerpoInvalido(t *testing.T) {
	app := buildSessionApp(&stubSessions{})

	resp := call(t, app, http.MethodPatch, "/api/sessions/s-1/autosave", apphttp.RoleOperateur, `{"butanier":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
}

func TestSessionHandler_Close_ErroresDeValidacion(t *testing.T) {
	var ve domain.ValidationErrors
	ve.Add("reservoirs[0].height", "requerido en modo AUTOMATIC")
	stub := &stubSessions{err: ve}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodPost, "/api/sessions/s-1/close", apphttp.RoleChefCentre, `{"bouteilles":[],"reservoirs":[]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		Code    string              `json:"code"`
		Details []domain.FieldError `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "reservoirs[0].height", body.Details[0].Field)
	assert.Equal(t, testUserID, stub.gotUser)
}

func TestSessionHandler_Close_OperateurNoPuedeCerrar(t *testing.T) {
	stub := &stubSessions{}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodPost, "/api/sessions/s-1/close", apphttp.RoleOperateur, `{}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, stub.gotID)
}

func TestSessionHandler_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no en curso", fmt.Errorf("cerrar: %w", domain.ErrSessionNotInProgress), http.StatusConflict, "SESSION_NOT_IN_PROGRESS"},
		{"conflicto", fmt.Errorf("%w: ya existe", domain.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"no encontrada", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"otro centro", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"entrada", fmt.Errorf("%w: status", domain.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{"infraestructura", fmt.Errorf("conexión rechazada"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildSessionApp(&stubSessions{err: tc.err})
			resp := call(t, app, http.MethodGet, "/api/sessions/s-1", apphttp.RoleOperateur, "")
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestSessionHandler_List_PasaFiltros(t *testing.T) {
	stub := &stubSessions{}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodGet, "/api/sessions?from=2026-03-01&to=2026-03-31&status=CLOSED&limit=5&offset=10", apphttp.RoleOperateur, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-03-01", stub.gotQuery.From)
	assert.Equal(t, "2026-03-31", stub.gotQuery.To)
	assert.Equal(t, "CLOSED", stub.gotQuery.Status)
	assert.Equal(t, 5, stub.gotQuery.Limit)
	assert.Equal(t, 10, stub.gotQuery.Offset)
}

func TestSessionHandler_GetByDate_AdminConOtroCentro(t *testing.T) {
	stub := &stubSessions{}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodGet, "/api/sessions/by-date/2026-03-10?center_id=center-thies", apphttp.RoleAdmin, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "center-thies", stub.gotCenter)
}

func TestSessionHandler_Report(t *testing.T) {
	stub := &stubSessions{}
	app := buildSessionApp(stub)

	resp := call(t, app, http.MethodGet, "/api/sessions/s-1/report.pdf", apphttp.RoleOperateur, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "produccion_DKR_2026-03-10.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

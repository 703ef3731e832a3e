package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/service"
	"driver-roster/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
	changePassErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	markResult    *dto.ScheduleResponse
	markErr       error
	clearErr      error
	dailyResult   *dto.DailyBoardResponse
	dailyErr      error
	monthlyResult *dto.MonthlyBoardResponse
	monthlyErr    error
}

func (m *mockScheduleService) MarkStatus(_ context.Context, _ *dto.MarkStatusRequest) (*dto.ScheduleResponse, error) {
	return m.markResult, m.markErr
}
func (m *mockScheduleService) ClearStatus(_ context.Context, _ *dto.ClearStatusRequest) error {
	return m.clearErr
}
func (m *mockScheduleService) GetDailyBoard(_ context.Context, _ string) (*dto.DailyBoardResponse, error) {
	return m.dailyResult, m.dailyErr
}
func (m *mockScheduleService) GetMonthlyBoard(_ context.Context, _ *dto.MonthlyBoardRequest) (*dto.MonthlyBoardResponse, error) {
	return m.monthlyResult, m.monthlyErr
}

// ── Mock ReplacementService ──

type mockReplacementService struct {
	assignResult *dto.ReplacementResponse
	assignErr    error
	updateResult *dto.ReplacementResponse
	updateErr    error
	deleteErr    error
	listResult   []dto.ReplacementResponse
	listErr      error
}

func (m *mockReplacementService) Assign(_ context.Context, _ *dto.AssignReplacementRequest) (*dto.ReplacementResponse, error) {
	return m.assignResult, m.assignErr
}
func (m *mockReplacementService) Update(_ context.Context, _ string, _ *dto.UpdateReplacementRequest) (*dto.ReplacementResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockReplacementService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockReplacementService) ListByDate(_ context.Context, _ string) ([]dto.ReplacementResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf         *bytes.Buffer
	bufFilename string
	bufErr      error
	ics         string
	icsFilename string
	icsErr      error
}

func (m *mockExportService) ExportDailyRoster(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.bufFilename, m.bufErr
}
func (m *mockExportService) DriverCalendar(_ context.Context, _ string, _, _ int) (string, string, error) {
	return m.ics, m.icsFilename, m.icsErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "dispatcher01",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "dispatcher01",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_BadToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrRefreshTokenBad})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10002 {
		t.Errorf("expected error code 10002, got %d", resp.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "Old12345",
		NewPassword: "New12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_NoToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	// 无 Token 的登出按成功处理
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_MarkStatus_Success(t *testing.T) {
	mock := &mockScheduleService{
		markResult: &dto.ScheduleResponse{
			ID:       "sched-1",
			DriverID: "11111111-1111-1111-1111-111111111111",
			Date:     "2026-08-24",
			IsDayOff: true,
		},
	}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/schedules/status", jsonBody(dto.MarkStatusRequest{
		DriverID: "11111111-1111-1111-1111-111111111111",
		Date:     "2026-08-24",
		Status:   dto.StatusDayOff,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/schedules/status", func(c *gin.Context) {
		setAuth(c)
		h.MarkStatus(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduleHandler_MarkStatus_BadStatus(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/schedules/status", jsonBody(map[string]string{
		"driver_id": "11111111-1111-1111-1111-111111111111",
		"date":      "2026-08-24",
		"status":    "sick_leave", // 不在 oneof 白名单内
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/schedules/status", func(c *gin.Context) {
		setAuth(c)
		h.MarkStatus(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_GetDailyBoard_MissingDate(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/schedules/board", nil) // no date

	r := gin.New()
	r.GET("/schedules/board", h.GetDailyBoard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"DateInvalid", service.ErrDateInvalid, 400, 10003},
		{"NotFound", service.ErrScheduleNotFound, 404, 14001},
		{"DriverGone", service.ErrScheduleDriverGone, 404, 14002},
		{"HasReplacement", service.ErrScheduleHasReplace, 409, 14003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewScheduleHandler(&mockScheduleService{dailyErr: tt.err})

			w := setupRecorder()
			req := httptest.NewRequest("GET", "/schedules/board?date=2026-08-24", nil)

			r := gin.New()
			r.GET("/schedules/board", h.GetDailyBoard)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ReplacementHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReplacementHandler_Assign_Success(t *testing.T) {
	mock := &mockReplacementService{
		assignResult: &dto.ReplacementResponse{ID: "rep-1"},
	}
	h := NewReplacementHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/replacements", jsonBody(dto.AssignReplacementRequest{
		ScheduleID:          "11111111-1111-1111-1111-111111111111",
		ReplacementDriverID: "22222222-2222-2222-2222-222222222222",
		ShiftID:             "33333333-3333-3333-3333-333333333333",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/replacements", func(c *gin.Context) {
		setAuth(c)
		h.AssignReplacement(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestReplacementHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrReplacementNotFound, 404, 16001},
		{"Exists", service.ErrReplacementExists, 409, 16002},
		{"NotAbsent", service.ErrScheduleNotAbsent, 400, 16003},
		{"Self", service.ErrReplacementSelf, 400, 16004},
		{"DriverGone", service.ErrReplacementDriverGone, 404, 16005},
		{"ScheduleGone", service.ErrScheduleNotFound, 404, 14001},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReplacementHandler(&mockReplacementService{assignErr: tt.err})

			w := setupRecorder()
			req := httptest.NewRequest("POST", "/replacements", jsonBody(dto.AssignReplacementRequest{
				ScheduleID:          "11111111-1111-1111-1111-111111111111",
				ReplacementDriverID: "22222222-2222-2222-2222-222222222222",
				ShiftID:             "33333333-3333-3333-3333-333333333333",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/replacements", func(c *gin.Context) {
				setAuth(c)
				h.AssignReplacement(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestReplacementHandler_Update_BadBody(t *testing.T) {
	h := NewReplacementHandler(&mockReplacementService{})

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/replacements/rep-1", jsonBody(map[string]string{
		"replacement_driver_id": "not-a-uuid",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/replacements/:id", func(c *gin.Context) {
		setAuth(c)
		h.UpdateReplacement(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportDailyRoster_Success(t *testing.T) {
	mock := &mockExportService{
		buf:         bytes.NewBufferString("excel content"),
		bufFilename: "roster_2026-08-24.xlsx",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/roster?date=2026-08-24", nil)

	r := gin.New()
	r.GET("/export/roster", h.ExportDailyRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_ExportDailyRoster_MissingDate(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/roster", nil)

	r := gin.New()
	r.GET("/export/roster", h.ExportDailyRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ExportDailyRoster_NoDrivers(t *testing.T) {
	h := NewExportHandler(&mockExportService{bufErr: service.ErrExportNoDrivers})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/roster?date=2026-08-24", nil)

	r := gin.New()
	r.GET("/export/roster", h.ExportDailyRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 19001 {
		t.Errorf("expected error code 19001, got %d", resp.Code)
	}
}

func TestExportHandler_DriverCalendar_Success(t *testing.T) {
	mock := &mockExportService{
		ics:         "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
		icsFilename: "roster_D001_2026-08.ics",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/calendar/driver-a?month=8&year=2026", nil)

	r := gin.New()
	r.GET("/export/calendar/:driver_id", h.DriverCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected content type: %s", ct)
	}
}

func TestExportHandler_DriverCalendar_BadMonth(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/calendar/driver-a?month=13&year=2026", nil)

	r := gin.New()
	r.GET("/export/calendar/:driver_id", h.DriverCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

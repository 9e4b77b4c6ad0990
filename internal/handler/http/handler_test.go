package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/mock"
	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Test fixture
// ─────────────────────────────────────────────

const (
	testDevice = "kiosk-1"
	testToken  = "signed.jwt.token"
)

type serviceMocks struct {
	sessions *mock.MockSessionManager
	signup   *mock.MockSignupService
	profiles *mock.MockProfileService
	audit    *mock.MockAuditLog
	appInfo  *mock.MockAppInfoService
}

func newTestRouter(t *testing.T, cfg config.Server) (*serviceMocks, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		sessions: mock.NewMockSessionManager(ctrl),
		signup:   mock.NewMockSignupService(ctrl),
		profiles: mock.NewMockProfileService(ctrl),
		audit:    mock.NewMockAuditLog(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		Sessions: m.sessions,
		Signup:   m.signup,
		Profiles: m.profiles,
		Audit:    m.audit,
		AppInfo:  m.appInfo,
	}, cfg, logger.Nop())

	return m, h.Init()
}

func permissiveConfig() config.Server {
	return config.Server{RateLimit: 1000, RateBurst: 1000}
}

type request struct {
	method string
	path   string
	body   string
	device string
	token  string
}

func (rq request) do(router http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(rq.method, rq.path, strings.NewReader(rq.body))
	if rq.device != "" {
		req.Header.Set(deviceIDHeader, rq.device)
	}
	if rq.token != "" {
		req.Header.Set("Authorization", "Bearer "+rq.token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) models.OperationResult {
	t.Helper()
	var result models.OperationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result), rr.Body.String())
	return result
}

// expectAuthenticated makes the auth middleware accept testToken for
// testDevice as a session of profileID.
func expectAuthenticated(m *serviceMocks, profileID string) models.AuthSession {
	session := models.AuthSession{ID: "sess-1", ProfileID: profileID, DeviceID: testDevice}
	m.sessions.EXPECT().Authenticate(gomock.Any(), testDevice, testToken).Return(session, nil)
	return session
}

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/go-resty/resty/v2"
)

const deviceIDHeader = "X-Device-ID"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the HTTP implementation of [ServerAdapter]
// for the server at cfg.HTTPAddress. Every request carries cfg.DeviceID.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if strings.TrimSpace(cfg.DeviceID) == "" {
		return nil, fmt.Errorf("%w: empty device id", ErrBadRequest)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.SetHeader(deviceIDHeader, cfg.DeviceID)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.OperationResult, error) {
	var result models.OperationResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/signup")
	if err != nil {
		return models.OperationResult{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.OperationResult{}, err
	}

	if err = h.storeToken(resp); err != nil {
		return models.OperationResult{}, fmt.Errorf("signup: %w", err)
	}
	return result, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthSession, error) {
	return h.login(ctx, "/api/auth/login", req)
}

func (h *httpServerAdapter) LoginByName(ctx context.Context, req models.LoginByNameRequest) (models.AuthSession, error) {
	return h.login(ctx, "/api/auth/login-by-name", req)
}

func (h *httpServerAdapter) login(ctx context.Context, path string, body any) (models.AuthSession, error) {
	var result models.OperationResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthSession{}, err
	}
	if result.Session == nil {
		return models.AuthSession{}, fmt.Errorf("login: %w: no session in response", ErrUnexpectedStatus)
	}

	if err = h.storeToken(resp); err != nil {
		return models.AuthSession{}, fmt.Errorf("login: %w", err)
	}
	return *result.Session, nil
}

// storeToken keeps the bearer token from the Authorization response header.
func (h *httpServerAdapter) storeToken(resp *resty.Response) error {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("parse bearer token: %w", err)
	}
	h.SetToken(token)
	return nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Session(ctx context.Context) (models.SessionStatus, error) {
	var status models.SessionStatus

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/api/auth/session")
	if err != nil {
		return models.SessionStatus{}, fmt.Errorf("session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionStatus{}, err
	}

	if status.Expired {
		h.logger.Info().Str("func", "*httpServerAdapter.Session").Msg("session expired, dropping token")
		h.SetToken("")
	}
	return status, nil
}

func (h *httpServerAdapter) ChangePin(ctx context.Context, req models.ChangePinRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/pin")
	if err != nil {
		return fmt.Errorf("change pin request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Profiles(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&profiles).
		Get("/api/profiles")
	if err != nil {
		return nil, fmt.Errorf("profiles request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (h *httpServerAdapter) ResetPin(ctx context.Context, profileID string) error {
	return h.adminAction(ctx, profileID, "reset-pin", nil)
}

func (h *httpServerAdapter) Suspend(ctx context.Context, profileID, reason string) error {
	return h.adminAction(ctx, profileID, "suspend", models.SuspendRequest{Reason: reason})
}

func (h *httpServerAdapter) Unsuspend(ctx context.Context, profileID string) error {
	return h.adminAction(ctx, profileID, "unsuspend", nil)
}

func (h *httpServerAdapter) adminAction(ctx context.Context, profileID, action string, body any) error {
	req := h.authedRequest(ctx).SetPathParam("id", profileID)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Post("/api/admin/profiles/{id}/" + action)
	if err != nil {
		return fmt.Errorf("%s request: %w", action, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Audit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry

	req := h.authedRequest(ctx).SetResult(&entries)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/admin/audit")
	if err != nil {
		return nil, fmt.Errorf("audit request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return entries, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	var info struct {
		Version string `json:"version"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return info.Version, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rkartside/quoter-backend/api/middleware"
	"github.com/rkartside/quoter-backend/internal/auth"
	pkgAuth "github.com/rkartside/quoter-backend/pkg/auth"
	"github.com/rkartside/quoter-backend/pkg/config"
	"github.com/rkartside/quoter-backend/pkg/enums"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
)

type stubAuthService struct {
	login       *auth.LoginResponse
	refresh     *auth.RefreshResponse
	err         error
	loggedOutID string
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return s.refresh, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOutID = accessID
	return s.err
}

type stubSwitchService struct {
	result *auth.SwitchStoreResult
	err    error
	got    auth.SwitchStoreInput
}

func (s *stubSwitchService) Switch(ctx context.Context, input auth.SwitchStoreInput) (*auth.SwitchStoreResult, error) {
	s.got = input
	return s.result, s.err
}

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "quoter", ExpirationMinutes: 60}
}

func mintToken(t *testing.T, cfg config.JWTConfig, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.MemberRoleAdmin,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{login: &auth.LoginResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
	}}
	handler := AuthLogin(svc, nil)

	payload := []byte(`{"email":"maria@example.com","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" {
		t.Fatalf("unexpected access token %q", envelope.Data.AccessToken)
	}
}

func TestAuthLoginRejectsBadEmail(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, nil)

	payload := []byte(`{"email":"not-an-email","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthLoginWrongCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, nil)

	payload := []byte(`{"email":"maria@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRefreshSuccess(t *testing.T) {
	svc := &stubAuthService{refresh: &auth.RefreshResponse{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
	}}
	handler := AuthRefresh(svc, nil)

	payload := []byte(`{"access_token":"stale","refresh_token":"refresh"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	cfg := testJWT()
	svc := &stubAuthService{}
	handler := AuthLogout(svc, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, "session-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.loggedOutID != "session-1" {
		t.Fatalf("expected session-1 revoked got %q", svc.loggedOutID)
	}
}

func TestAuthLogoutRequiresToken(t *testing.T) {
	handler := AuthLogout(&stubAuthService{}, testJWT(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthSwitchStore(t *testing.T) {
	cfg := testJWT()
	storeID := uuid.New()
	svc := &stubSwitchService{result: &auth.SwitchStoreResult{
		AccessToken:  "scoped-access",
		RefreshToken: "scoped-refresh",
	}}
	handler := newChiHandler(http.MethodPost, "/api/v1/auth/switch-store/{storeId}", AuthSwitchStore(svc, cfg, nil))

	payload := []byte(`{"refresh_token":"refresh"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/switch-store/"+storeID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, "session-2"))
	req = req.WithContext(middleware.WithRole(req.Context(), string(enums.MemberRoleAdmin)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.got.StoreID != storeID {
		t.Fatalf("expected store %s got %s", storeID, svc.got.StoreID)
	}
	if svc.got.AccessTokenID != "session-2" {
		t.Fatalf("expected access id session-2 got %q", svc.got.AccessTokenID)
	}
	if svc.got.RefreshToken != "refresh" {
		t.Fatalf("expected refresh token passed through, got %q", svc.got.RefreshToken)
	}
}

func TestAuthSwitchStoreInvalidStoreID(t *testing.T) {
	handler := newChiHandler(http.MethodPost, "/api/v1/auth/switch-store/{storeId}", AuthSwitchStore(&stubSwitchService{}, testJWT(), nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/switch-store/nope", bytes.NewReader([]byte(`{"refresh_token":"r"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rkartside/quoter-backend/internal/auth"
	"github.com/rkartside/quoter-backend/internal/quotes"
	"github.com/rkartside/quoter-backend/internal/rates"
	"github.com/rkartside/quoter-backend/internal/stores"
	pkgAuth "github.com/rkartside/quoter-backend/pkg/auth"
	"github.com/rkartside/quoter-backend/pkg/config"
	"github.com/rkartside/quoter-backend/pkg/enums"
	"github.com/rkartside/quoter-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error { return nil }

type stubSwitchService struct{}

func (stubSwitchService) Switch(ctx context.Context, input auth.SwitchStoreInput) (*auth.SwitchStoreResult, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubStoreService struct{}

func (stubStoreService) List(ctx context.Context) ([]stores.StoreDTO, error) {
	return []stores.StoreDTO{}, nil
}

func (stubStoreService) GetByID(ctx context.Context, id uuid.UUID) (*stores.StoreDTO, error) {
	return &stores.StoreDTO{ID: id}, nil
}

func (stubStoreService) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*stores.StoreDTO, error) {
	return &stores.StoreDTO{OwnerID: ownerID}, nil
}

type stubRateService struct{}

func (stubRateService) CalculateForStore(ctx context.Context, storeID uuid.UUID, input rates.CalculateInput) (int64, error) {
	return 3300, nil
}

type stubQuoteService struct{}

func (stubQuoteService) Create(ctx context.Context, actor quotes.Actor, input quotes.CreateQuoteDTO, rateAmount int64) (*quotes.QuoteDTO, error) {
	return &quotes.QuoteDTO{ID: 1}, nil
}

func (stubQuoteService) Confirm(ctx context.Context, id int64) (*quotes.QuoteDTO, error) {
	return &quotes.QuoteDTO{ID: id, IsConfirmed: true}, nil
}

func (stubQuoteService) List(ctx context.Context, actor quotes.Actor, input quotes.ListInput) (*quotes.QuoteListDTO, error) {
	return &quotes.QuoteListDTO{Quotes: []quotes.QuoteDTO{}, Page: 1, PageSize: 25}, nil
}

func (stubQuoteService) DeleteBulk(ctx context.Context, ids []int64) (int64, error) {
	return int64(len(ids)), nil
}

func (stubQuoteService) UpdateStatusBulk(ctx context.Context, ids []int64, status enums.QuoteStatus) (int64, error) {
	return int64(len(ids)), nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "quoter", ExpirationMinutes: 60},
		Quotes: config.QuotesConfig{
			PageSize:      25,
			ActionLockTTL: 30 * time.Second,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	registry := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:         testConfig(),
		DB:             stubPinger{},
		SessionManager: stubSessionManager{},
		Registry:       registry,
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		AuthService:    stubAuthService{},
		SwitchService:  stubSwitchService{},
		StoreService:   stubStoreService{},
		RateService:    stubRateService{},
		QuoteService:   stubQuoteService{},
	})
}

func TestRouterHealthAndPublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz/live", "/healthz/ready", "/api/public/ping", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, rec.Code)
		}
	}
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := map[string]string{
		http.MethodGet:  "/api/v1/quotes/",
		http.MethodPost: "/api/v1/rates/calculate",
	}
	for method, path := range paths {
		req := httptest.NewRequest(method, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s got %d", method, path, rec.Code)
		}
	}
}

func TestRouterAuthedQuoteList(t *testing.T) {
	router := newTestRouter(t)
	cfg := testConfig()

	storeID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:        uuid.New(),
		ActiveStoreID: &storeID,
		Role:          enums.MemberRoleStoreUser,
		JTI:           "session-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterStoreListRequiresAdmin(t *testing.T) {
	router := newTestRouter(t)
	cfg := testConfig()

	storeID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:        uuid.New(),
		ActiveStoreID: &storeID,
		Role:          enums.MemberRoleStoreUser,
		JTI:           "session-2",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

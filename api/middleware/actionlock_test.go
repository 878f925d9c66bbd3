package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type stubLockStore struct {
	mu     sync.Mutex
	locks  map[string]bool
	setErr error
}

func newStubLockStore() *stubLockStore {
	return &stubLockStore{locks: map[string]bool{}}
}

func (s *stubLockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return false, s.setErr
	}
	if s.locks[key] {
		return false, nil
	}
	s.locks[key] = true
	return true, nil
}

func (s *stubLockStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.locks, key)
	}
	return nil
}

func (s *stubLockStore) ActionLockKey(userID, action string) string {
	return fmt.Sprintf("lock:%s:%s", userID, action)
}

func (s *stubLockStore) held(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locks[key]
}

func TestActionLockReleasesAfterRequest(t *testing.T) {
	store := newStubLockStore()
	handler := ActionLock(store, "quote_create", time.Second, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
	req = req.WithContext(WithUserID(req.Context(), "user-1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if store.held(store.ActionLockKey("user-1", "quote_create")) {
		t.Fatal("expected lock released after request")
	}
}

func TestActionLockRejectsConcurrentAction(t *testing.T) {
	store := newStubLockStore()
	key := store.ActionLockKey("user-1", "quote_create")
	store.locks[key] = true

	handler := ActionLock(store, "quote_create", time.Second, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run while lock is held")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
	req = req.WithContext(WithUserID(req.Context(), "user-1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	if !store.held(key) {
		t.Fatal("rejected request must not release the original lock")
	}
}

func TestActionLockSkipsAnonymousRequests(t *testing.T) {
	store := newStubLockStore()
	handler := ActionLock(store, "quote_create", time.Second, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(store.locks) != 0 {
		t.Fatalf("expected no locks taken, got %d", len(store.locks))
	}
}

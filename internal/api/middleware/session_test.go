package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/core/domain"
)

const testSecret = "test-secret"

type stubSessionStore struct {
	sessions map[string]*domain.Principal
	getErr   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Principal)}
}

func (s *stubSessionStore) Create(_ context.Context, p *domain.Principal) (string, error) {
	sid := "sid-1"
	s.sessions[sid] = p
	return sid, nil
}

func (s *stubSessionStore) Get(_ context.Context, sessionID string) (*domain.Principal, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return p, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func signToken(t *testing.T, secret, sid string) string {
	t.Helper()
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tkn.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// runSession sends a request through the middleware and captures what the
// downstream handler sees in the context.
func runSession(t *testing.T, store *stubSessionStore, cookie string) (*domain.Principal, string, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotPrincipal *domain.Principal
	var gotSID string
	h := Session(testSecret, store)(func(c echo.Context) error {
		gotPrincipal, _ = c.Get(ContextPrincipal).(*domain.Principal)
		gotSID, _ = c.Get(ContextSessionID).(string)
		return c.NoContent(http.StatusOK)
	})

	err := h(c)
	return gotPrincipal, gotSID, err
}

func TestSession_ValidCookieInjectsPrincipal(t *testing.T) {
	store := newStubSessionStore()
	want := &domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin}
	sid, _ := store.Create(context.Background(), want)

	p, gotSID, err := runSession(t, store, signToken(t, testSecret, sid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected principal in context, got nil")
	}
	if p.UserID != want.UserID || p.Username != want.Username || p.Role != want.Role {
		t.Fatalf("unexpected principal: %+v", p)
	}
	if gotSID != sid {
		t.Fatalf("session id = %q, want %q", gotSID, sid)
	}
}

func TestSession_MissingCookieIsAnonymous(t *testing.T) {
	p, sid, err := runSession(t, newStubSessionStore(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil || sid != "" {
		t.Fatalf("expected anonymous request, got principal=%+v sid=%q", p, sid)
	}
}

func TestSession_BadSignatureIsAnonymous(t *testing.T) {
	store := newStubSessionStore()
	sid, _ := store.Create(context.Background(), &domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin})

	p, _, err := runSession(t, store, signToken(t, "wrong-secret", sid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("forged token must not resolve a principal, got %+v", p)
	}
}

func TestSession_DestroyedSessionIsAnonymous(t *testing.T) {
	store := newStubSessionStore()
	sid, _ := store.Create(context.Background(), &domain.Principal{UserID: 2, Username: "staff", Role: domain.RoleStaff})
	token := signToken(t, testSecret, sid)
	_ = store.Destroy(context.Background(), sid)

	p, _, err := runSession(t, store, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("destroyed session must not resolve a principal, got %+v", p)
	}
}

func TestSession_StoreFailurePropagates(t *testing.T) {
	store := newStubSessionStore()
	sid, _ := store.Create(context.Background(), &domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin})
	store.getErr = errors.New("redis down")

	_, _, err := runSession(t, store, signToken(t, testSecret, sid))
	if err == nil {
		t.Fatal("expected the store failure to propagate, got nil")
	}
}

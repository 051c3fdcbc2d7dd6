package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = r.nextID
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]*domain.Principal
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Principal)}
}

func (s *stubSessionStore) Create(_ context.Context, p *domain.Principal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sid := fmt.Sprintf("sess-%d", s.nextID)
	clone := *p
	s.sessions[sid] = &clone
	return sid, nil
}

func (s *stubSessionStore) Get(_ context.Context, sid string) (*domain.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

// ---------------------------------------------------------------------------

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	seedUser(t, repo, "carol", "s3cret", domain.RoleAdmin)
	svc := NewAuthService(repo, sessions, "secret", time.Hour, zerolog.Nop())

	token, principal, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if principal == nil || principal.Username != "carol" || principal.Role != domain.RoleAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		t.Fatalf("expected sid claim, got %v", claims["sid"])
	}
	stored, err := sessions.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if stored.UserID != principal.UserID || stored.Role != domain.RoleAdmin {
		t.Fatalf("unexpected stored principal: %+v", stored)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	seedUser(t, repo, "dave", "goodpass", domain.RoleStaff)
	svc := NewAuthService(repo, sessions, "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("no session should be created on failure")
	}
}

func TestAuthService_Login_UnknownUserIsIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	seedUser(t, repo, "erin", "goodpass", domain.RoleStaff)
	svc := NewAuthService(repo, sessions, "secret", time.Hour, zerolog.Nop())

	_, _, unknownErr := svc.Login(context.Background(), "ghost", "goodpass")
	_, _, wrongPassErr := svc.Login(context.Background(), "erin", "badpass")

	if unknownErr != domain.ErrInvalidCredentials || wrongPassErr != domain.ErrInvalidCredentials {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v and %v", unknownErr, wrongPassErr)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "user", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Logout_DestroysSession(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	seedUser(t, repo, "frank", "pass", domain.RoleStaff)
	svc := NewAuthService(repo, sessions, "secret", time.Hour, zerolog.Nop())

	token, _, err := svc.Login(context.Background(), "frank", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	sid := claims["sid"].(string)

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := sessions.Get(context.Background(), sid); err != domain.ErrSessionNotFound {
		t.Fatalf("expected session destroyed, got %v", err)
	}
}

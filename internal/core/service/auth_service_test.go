package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	byID          map[string]*domain.User
	byEmail       map[string]*domain.User
	nextID        int
	findByIDCalls int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.findByIDCalls++
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) UpdateSectors(_ context.Context, id string, sectors []string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Sectors = sectors
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:       "alice@example.com",
		Password:    "correct-horse",
		DisplayName: "Alice",
		Role:        domain.RoleTechnician,
		Sectors:     []string{"north", "south"},
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.PasswordHash == "correct-horse" {
		t.Fatal("password must never be stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")) != nil {
		t.Error("stored hash must verify against the original password")
	}
	if user.ID == "" {
		t.Error("expected a repository-assigned ID")
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, discardLogger)

	in := registerInput()
	in.Role = "superuser"
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput())
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_IssuesTokenWithAccessClaims(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)
	created, _ := svc.Register(context.Background(), registerInput())

	token, user, err := svc.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("expected user %q, got %q", created.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != created.ID {
		t.Errorf("sub claim: want %q, got %v", created.ID, claims["sub"])
	}
	if claims["email"] != "alice@example.com" || claims["role"] != domain.RoleTechnician {
		t.Errorf("unexpected identity claims: %v", claims)
	}
	sectors, ok := claims["sectors"].([]interface{})
	if !ok || len(sectors) != 2 {
		t.Errorf("expected 2 sector claims, got %v", claims["sectors"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token must carry an expiry")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, discardLogger)
	_, _ = svc.Register(context.Background(), registerInput())

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, discardLogger)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Profile and the session store
// ---------------------------------------------------------------------------

func TestAuthService_Profile_ServedFromSessionAfterLogin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)
	created, _ := svc.Register(context.Background(), registerInput())
	_, _, _ = svc.Login(context.Background(), "alice@example.com", "correct-horse")

	profile, err := svc.Profile(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Email != "alice@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if repo.findByIDCalls != 0 {
		t.Errorf("login must prime the session; expected 0 repository reads, got %d", repo.findByIDCalls)
	}
}

func TestAuthService_Profile_FetchedOncePerSession(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)
	created, _ := svc.Register(context.Background(), registerInput())

	// No login: the first profile read hits the repository, later reads
	// come from the session.
	for i := 0; i < 3; i++ {
		if _, err := svc.Profile(context.Background(), created.ID); err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
	}
	if repo.findByIDCalls != 1 {
		t.Errorf("expected exactly 1 repository read, got %d", repo.findByIDCalls)
	}
}

func TestAuthService_Profile_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, discardLogger)

	_, err := svc.Profile(context.Background(), "user_999")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_UpdateSectors_PushesToLiveSession(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)
	created, _ := svc.Register(context.Background(), registerInput())
	_, _, _ = svc.Login(context.Background(), "alice@example.com", "correct-horse")

	var seen [][]string
	unsubscribe := svc.SubscribeProfile(created.ID, func(u *domain.User) {
		if u != nil {
			seen = append(seen, u.Sectors)
		}
	})
	defer unsubscribe()

	updated, err := svc.UpdateSectors(context.Background(), created.ID, []string{"east"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Sectors) != 1 || updated.Sectors[0] != "east" {
		t.Errorf("unexpected updated sectors: %v", updated.Sectors)
	}

	// One delivery at subscribe time, one for the update.
	if len(seen) != 2 || len(seen[1]) != 1 || seen[1][0] != "east" {
		t.Fatalf("subscriber must observe the sector change without re-login, got %v", seen)
	}

	// The session now serves the updated profile.
	profile, _ := svc.Profile(context.Background(), created.ID)
	if len(profile.Sectors) != 1 || profile.Sectors[0] != "east" {
		t.Errorf("profile after update: %v", profile.Sectors)
	}
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// AuthService implements account management, session-token issuance, and the
// per-session access-profile store. Profiles are fetched from the repository
// once per session and served from memory afterwards; sector changes made by
// an admin are pushed into the live session so subscribers see them without
// a re-login.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session // by user ID
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		sessions:  make(map[string]*Session),
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleTechnician {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hash),
		Role:         input.Role,
		Sectors:      input.Sectors,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	// Prime the session store so the first profile read after login is
	// already served from memory.
	s.session(user.ID).Set(user)

	return token, user, nil
}

// Profile resolves the access profile for a user ID: from the live session
// when one exists, from the repository otherwise.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	sess := s.session(userID)
	if profile := sess.Current(); profile != nil {
		return profile, nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sess.Set(user)
	return user, nil
}

// UpdateSectors replaces a user's accessible sectors and pushes the updated
// profile to the user's live session, if any.
func (s *AuthService) UpdateSectors(ctx context.Context, userID string, sectors []string) (*domain.User, error) {
	updated, err := s.repo.UpdateSectors(ctx, userID, sectors)
	if err != nil {
		return nil, err
	}

	s.session(userID).Set(updated)
	s.log.Info().Str("user_id", userID).Strs("sectors", sectors).Msg("accessible sectors updated")
	return updated, nil
}

// SubscribeProfile registers fn on the user's session; it is invoked
// immediately with the current profile (nil when not yet resolved) and on
// every change.
func (s *AuthService) SubscribeProfile(userID string, fn func(*domain.User)) (unsubscribe func()) {
	return s.session(userID).Subscribe(fn)
}

// session returns the user's session, creating an empty one if needed.
func (s *AuthService) session(userID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = NewSession(nil)
		s.sessions[userID] = sess
	}
	return sess
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"sectors": user.Sectors,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/store"
)

// Persister mirrors created accounts into a durable backend, best-effort.
type Persister interface {
	SaveUser(ctx context.Context, u *domain.User) error
}

// Service is the auth gate: credential check against the user table,
// signup, federated login and session token issuance.
type Service struct {
	users       store.UserStore
	persister   Persister // nil disables persistence
	jwtSecret   []byte
	tokenTTL    time.Duration
	googleEmail string
	logger      logger.Logger
}

// NewService creates the auth gate.
func NewService(
	users store.UserStore,
	persister Persister,
	jwtSecret []byte,
	tokenTTL time.Duration,
	googleEmail string,
	log logger.Logger,
) *Service {
	return &Service{
		users:       users,
		persister:   persister,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		googleEmail: googleEmail,
		logger:      log,
	}
}

// Login checks credentials against the user table. Any mismatch fails with
// ErrInvalidCredentials; unknown email and wrong password are not
// distinguished.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Burn a comparison so unknown emails take as long as wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info("login",
		logger.String("user_id", user.ID),
		logger.String("role", string(user.Role)))

	return user, nil
}

// Signup creates a student account. Fails with ErrAlreadyExists when the
// email is taken and ErrValidation on malformed input.
func (s *Service) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.InsertUser(ctx, &domain.User{
		Email:        email,
		Role:         domain.RoleStudent,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.persist(ctx, user)
	s.logger.Info("signup", logger.String("user_id", user.ID))

	return user, nil
}

// LoginWithGoogle resolves the configured federated profile, creating a
// student account on first use. The actual identity exchange happens
// outside this service; by the time this is called the subject is fixed.
func (s *Service) LoginWithGoogle(ctx context.Context) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, s.googleEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up federated user: %w", err)
	}

	// First federated login: provision a password-less student account.
	user, err = s.users.InsertUser(ctx, &domain.User{
		Email: s.googleEmail,
		Role:  domain.RoleStudent,
	})
	if err != nil {
		return nil, err
	}

	s.persist(ctx, user)
	s.logger.Info("federated account provisioned",
		logger.String("user_id", user.ID))

	return user, nil
}

// TokenForUser serializes the session subject.
func (s *Service) TokenForUser(user *domain.User) (string, error) {
	return GenerateToken(user, s.jwtSecret, s.tokenTTL)
}

// UserFromToken deserializes the session subject.
func (s *Service) UserFromToken(token string) (*domain.User, error) {
	return UserFromToken(token, s.jwtSecret)
}

// TokenTTL exposes the session lifetime for cookie expiry.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *Service) persist(ctx context.Context, user *domain.User) {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveUser(ctx, user); err != nil {
		s.logger.Warn("failed to persist user",
			logger.String("user_id", user.ID),
			logger.Error(err))
	}
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: malformed email", domain.ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: empty password", domain.ErrValidation)
	}
	return nil
}

// dummyHash is a valid bcrypt hash of a random string, used to equalize
// login timing for unknown emails.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

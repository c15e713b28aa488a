package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

type stubThrottle struct {
	blocked  bool
	checkErr error
	failures []string
	resets   []string
}

func (s *stubThrottle) TooManyAttempts(_ context.Context, email string) (bool, error) {
	return s.blocked, s.checkErr
}

func (s *stubThrottle) RecordFailure(_ context.Context, email string) error {
	s.failures = append(s.failures, email)
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, email string) error {
	s.resets = append(s.resets, email)
	return nil
}

func newAuthService(users ports.UserRepository, throttle LoginThrottle) *AuthService {
	return NewAuthService(users, throttle, "test-secret", time.Hour, discardLogger)
}

func seedAccount(t *testing.T, users *stubUserRepo, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := users.Create(context.Background(), &domain.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return u
}

func TestRegister_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, nil)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice_seller",
		Email:    "  Alice@Example.COM ",
		Password: "Secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.User.Role != domain.RoleUser {
		t.Fatalf("new accounts must get the user role, got %q", result.User.Role)
	}
	if result.User.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", result.User.Email)
	}
	if result.User.PasswordHash == "Secret1" || result.User.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if result.Token == "" {
		t.Fatalf("no token issued on registration")
	}
}

func TestRegister_Conflict(t *testing.T) {
	users := newStubUserRepo()
	users.createErr = domain.ErrUserExists
	svc := newAuthService(users, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice_seller", Email: "alice@example.com", Password: "Secret1",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	users := newStubUserRepo()
	user := seedAccount(t, users, "alice@example.com", "Secret1")
	throttle := &stubThrottle{}
	svc := newAuthService(users, throttle)

	result, err := svc.Login(context.Background(), "alice@example.com", "Secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User.ID != user.ID {
		t.Fatalf("wrong user returned: %q", result.User.ID)
	}
	if len(throttle.resets) != 1 {
		t.Fatalf("throttle not reset after successful login")
	}
}

func TestLogin_TokenClaims(t *testing.T) {
	users := newStubUserRepo()
	user := seedAccount(t, users, "alice@example.com", "Secret1")
	svc := newAuthService(users, nil)

	result, err := svc.Login(context.Background(), "alice@example.com", "Secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Fatalf("sub = %v, want %q", claims["sub"], user.ID)
	}
	if claims["email"] != "alice@example.com" {
		t.Fatalf("email claim = %v", claims["email"])
	}
	if claims["role"] != "user" {
		t.Fatalf("role claim = %v", claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("token has no expiry")
	}
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	users := newStubUserRepo()
	seedAccount(t, users, "alice@example.com", "Secret1")
	throttle := &stubThrottle{}
	svc := newAuthService(users, throttle)

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "Secret1")
	_, errWrong := svc.Login(context.Background(), "alice@example.com", "wrong")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if len(throttle.failures) != 2 {
		t.Fatalf("both failures should be recorded, got %d", len(throttle.failures))
	}
}

func TestLogin_Throttled(t *testing.T) {
	users := newStubUserRepo()
	seedAccount(t, users, "alice@example.com", "Secret1")
	svc := newAuthService(users, &stubThrottle{blocked: true})

	_, err := svc.Login(context.Background(), "alice@example.com", "Secret1")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestLogin_ThrottleErrorFailsOpen(t *testing.T) {
	users := newStubUserRepo()
	seedAccount(t, users, "alice@example.com", "Secret1")
	svc := newAuthService(users, &stubThrottle{checkErr: errors.New("redis down")})

	if _, err := svc.Login(context.Background(), "alice@example.com", "Secret1"); err != nil {
		t.Fatalf("throttle errors must not block valid logins: %v", err)
	}
}

func TestLogin_NormalizesEmail(t *testing.T) {
	users := newStubUserRepo()
	seedAccount(t, users, "alice@example.com", "Secret1")
	svc := newAuthService(users, nil)

	if _, err := svc.Login(context.Background(), "  ALICE@Example.com ", "Secret1"); err != nil {
		t.Fatalf("email lookup should be case-insensitive: %v", err)
	}
}

func TestProfile_NotFound(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)
	_, err := svc.Profile(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/eco-track/internal/domain"
	"github.com/msomdec/eco-track/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user registration, login, profile updates and JWT
// token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		tokenTTL:   tokenTTL,
	}
}

// TokenTTL returns how long issued tokens stay valid.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register creates a new user account after validating inputs. Every new
// account receives the default user role.
func (s *AuthService) Register(ctx context.Context, email, displayName, password, confirmPassword string) (*domain.User, error) {
	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)

	if email == "" || displayName == "" || password == "" {
		return nil, fmt.Errorf("%w: email, display name, and password are required", domain.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email address is not valid", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(displayName) > 100 {
		return nil, fmt.Errorf("%w: display name must be 100 characters or fewer", domain.ErrInvalidInput)
	}
	if password != confirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.UserRegistered()
	return user, nil
}

// Login verifies credentials and returns a signed JWT token string along
// with the authenticated user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.LoginAttempt("failure")
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttempt("failure")
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate jwt: %w", err)
	}

	metrics.LoginAttempt("success")
	return token, user, nil
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile changes a user's display name and avatar. Email and password
// cannot be changed here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, displayName, avatarURL string) (*domain.User, error) {
	displayName = strings.TrimSpace(displayName)
	avatarURL = strings.TrimSpace(avatarURL)

	if displayName == "" {
		return nil, fmt.Errorf("%w: display name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(displayName) > 100 {
		return nil, fmt.Errorf("%w: display name must be 100 characters or fewer", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(avatarURL) > 500 {
		return nil, fmt.Errorf("%w: avatar URL must be 500 characters or fewer", domain.ErrInvalidInput)
	}
	if avatarURL != "" && !validAvatarURL(avatarURL) {
		return nil, fmt.Errorf("%w: avatar must be an http(s) URL or a path starting with /", domain.ErrInvalidInput)
	}

	if err := s.users.UpdateProfile(ctx, userID, displayName, avatarURL); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          strconv.FormatInt(user.ID, 10),
		"email":        user.Email,
		"display_name": user.DisplayName,
		"roles":        user.Roles,
		"iat":          now.Unix(),
		"exp":          now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validAvatarURL(raw string) bool {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

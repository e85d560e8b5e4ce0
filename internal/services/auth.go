package services

import (
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/models"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

// Claims is the JWT payload carried by access tokens
type Claims struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.StandardClaims
}

// AuthService handles credential verification and token flows
type AuthService struct {
	userRepo    AuthUserRepository
	userService *UserService
	mailer      Mailer
	cfg         config.JWTConfig
	frontendURL string
	logger      *zap.Logger
}

// AuthUserRepository interface for the user operations authentication needs
type AuthUserRepository interface {
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(id int, passwordHash string) error
	SetResetToken(id int, token string, expires time.Time) error
	GetByResetToken(token string) (*models.User, error)
	ClearResetToken(id int) error
}

// Mailer sends transactional mail
type Mailer interface {
	SendPasswordResetEmail(to, resetURL string) error
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo AuthUserRepository,
	userService *UserService,
	mailer Mailer,
	cfg config.JWTConfig,
	frontendURL string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		userService: userService,
		mailer:      mailer,
		cfg:         cfg,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Register creates a new account through the user service
func (s *AuthService) Register(req *models.UserCreateRequest) (*models.User, error) {
	return s.userService.CreateUser(req)
}

// Login verifies credentials and issues a signed access token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if err == models.ErrUserNotFound {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// CurrentUser resolves the account behind a verified token
func (s *AuthService) CurrentUser(userID int) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// GenerateToken issues an access token carrying {userId, email, role}
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		StandardClaims: jwt.StandardClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.cfg.ExpiresIn).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies a token's signature, expiry, and issuer
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Issuer != s.cfg.Issuer {
		return nil, fmt.Errorf("invalid token issuer")
	}

	return claims, nil
}

// RequestPasswordReset issues a short-lived reset token, persists it on the
// user row, and emails a reset link. Whether the email exists is never
// revealed to the caller.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if err == models.ErrUserNotFound {
			return nil
		}
		return err
	}

	now := time.Now()
	expires := now.Add(s.cfg.ResetExpiry)
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		StandardClaims: jwt.StandardClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return fmt.Errorf("failed to sign reset token: %w", err)
	}

	if err := s.userRepo.SetResetToken(user.ID, signed, expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, signed)
	if err := s.mailer.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		// An unsendable token must not stay valid
		if clearErr := s.userRepo.ClearResetToken(user.ID); clearErr != nil {
			s.logger.Error("failed to clear reset token after mail failure",
				zap.Int("user_id", user.ID), zap.Error(clearErr))
		}
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token and stores the new password.
// The token is checked against both its signature and the persisted row,
// so it works exactly once.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if _, err := s.ParseToken(token); err != nil {
		return models.ErrInvalidResetToken
	}

	user, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		return err
	}

	if CheckPassword(newPassword, user.PasswordHash) {
		return models.ErrSamePassword
	}

	if err := models.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}

	return s.userRepo.ClearResetToken(user.ID)
}

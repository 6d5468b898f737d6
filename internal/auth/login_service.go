package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	apperrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
)

// LoginResult carries the issued token and the authenticated account.
type LoginResult struct {
	Token string            `json:"token"`
	User  *models.AdminUser `json:"user"`
}

// LoginService authenticates operator accounts against the stored bcrypt hash.
type LoginService struct {
	db  *gorm.DB
	jwt *JWTService
}

// NewLoginService constructs a LoginService.
func NewLoginService(db *gorm.DB, jwtService *JWTService) (*LoginService, error) {
	if db == nil {
		return nil, errors.New("auth: db is required")
	}
	if jwtService == nil {
		return nil, errors.New("auth: jwt service is required")
	}
	return &LoginService{db: db, jwt: jwtService}, nil
}

// Login verifies the credentials and issues an access token. Unknown accounts
// and wrong passwords produce the same error so the response does not leak
// which address is registered.
func (s *LoginService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.AdminUser
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(AccessTokenInput{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}

	return &LoginResult{Token: token, User: &user}, nil
}

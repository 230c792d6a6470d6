package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/normalization"
	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/requestdata"
)

type JWTClaims struct {
	Email string `json:"email"`
	Rol   string `json:"rol"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	TokenTTL() time.Duration
}

type authService struct {
	db          *gorm.DB
	log         *logger.Logger
	usuarioRepo repos.UsuarioRepo
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	usuarioRepo repos.UsuarioRepo,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:          db,
		log:         serviceLog,
		usuarioRepo: usuarioRepo,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// Unknown email and wrong password share this single value so the two cases
// are indistinguishable to the caller.
var errInvalidCredentials = apierr.Unauthorized("invalid_credentials", errors.New("invalid credentials"))

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalization.ParseInputString(email)
	if email == "" {
		return "", apierr.BadRequest("missing_email", errors.New("email is required to login"))
	}
	if password == "" {
		return "", apierr.BadRequest("missing_password", errors.New("password is required to login"))
	}

	usuario, err := as.usuarioRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errInvalidCredentials
		}
		return "", fmt.Errorf("Error retrieving user by email: %w", err)
	}
	if cErr := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(password)); cErr != nil {
		return "", errInvalidCredentials
	}

	claims := JWTClaims{
		Email: usuario.Email,
		Rol:   string(usuario.Rol),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuario.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, sErr := token.SignedString([]byte(as.jwtSecret))
	if sErr != nil {
		return "", fmt.Errorf("Failed to sign token: %w", sErr)
	}
	return signed, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, apierr.Unauthorized("invalid_token", fmt.Errorf("Failed to parse token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Unauthorized("invalid_token", errors.New("invalid or expired token"))
	}
	userID, pErr := uuid.Parse(claims.Subject)
	if pErr != nil {
		return ctx, apierr.Unauthorized("invalid_token", fmt.Errorf("Invalid user id in token: %w", pErr))
	}
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Email:       claims.Email,
		Rol:         claims.Rol,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) TokenTTL() time.Duration {
	return as.tokenTTL
}

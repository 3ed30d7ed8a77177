package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/balkashynov/cludy/internal/models"
)

const passwordMinLen = 6

type authServiceImpl struct {
	logger        zerolog.Logger
	db            *gorm.DB
	jwtIssuer     string
	jwtSigningKey []byte
	jwtTokenTTL   time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	gdb *gorm.DB,
	jwtIssuer string,
	jwtSigningKey []byte,
	jwtTokenTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:        logger,
		db:            gdb,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: jwtSigningKey,
		jwtTokenTTL:   jwtTokenTTL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if strings.TrimSpace(params.Username) == "" {
		return nil, validationErr("username", "must not be empty")
	}
	if strings.TrimSpace(params.Email) == "" {
		return nil, validationErr("email", "must not be empty")
	}
	if len(params.Password) < passwordMinLen {
		return nil, validationErr("password", "must be at least 6 characters")
	}

	if err := s.checkTaken(ctx, "email", params.Email, ErrEmailTaken); err != nil {
		return nil, err
	}
	if err := s.checkTaken(ctx, "username", params.Username, ErrUsernameTaken); err != nil {
		return nil, err
	}

	hash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	user := models.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Info().
		Uint("user_id", user.ID).
		Msg("registered user")

	return s.authResult(user)
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", params.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error().
			Err(err).
			Msg("failed to select user by email")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredentials
	}
	s.logger.Debug().
		Uint("user_id", user.ID).
		Msg("logged in user")

	return s.authResult(user)
}

func (s *authServiceImpl) GetUserByID(ctx context.Context, userID uint) (*UserView, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error().
			Err(err).
			Uint("user_id", userID).
			Msg("failed to select user")
		return nil, err
	}

	view := newUserView(user)
	return &view, nil
}

// ParseToken validates an access token and returns the user id it was
// issued for.
func (s *authServiceImpl) ParseToken(tokenString string) (uint, error) {
	claims := new(jwt.RegisteredClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.jwtSigningKey, nil
	}, jwt.WithIssuer(s.jwtIssuer))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenUnverifiable
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", err)
	}
	return uint(userID), nil
}

func (s *authServiceImpl) authResult(user models.User) (*AuthResult, error) {
	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("user_id", user.ID).
			Msg("failed to issue token")
		return nil, err
	}

	return &AuthResult{
		Token: token,
		User:  newUserView(user),
	}, nil
}

func (s *authServiceImpl) issueToken(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.jwtIssuer,
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTokenTTL)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSigningKey)
}

func (s *authServiceImpl) checkTaken(ctx context.Context, column, value string, taken error) error {
	var user models.User
	err := s.db.WithContext(ctx).Where(column+" = ?", value).First(&user).Error
	if err == nil {
		return taken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error().
			Err(err).
			Str("column", column).
			Msg("failed to check user uniqueness")
		return err
	}
	return nil
}

func newUserView(user models.User) UserView {
	return UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

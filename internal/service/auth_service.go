package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"campus-hub/internal/dto"
	"campus-hub/internal/models"
	"campus-hub/internal/repository"
	"campus-hub/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

const minPasswordLength = 8

type UserStore interface {
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ProfileReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// DomainResolver maps a university email address to its university.
type DomainResolver interface {
	UniversityByEmailDomain(ctx context.Context, email string) (*uuid.UUID, error)
}

type AuthService struct {
	users      UserStore
	profiles   ProfileReader
	domains    DomainResolver
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(users UserStore, profiles ProfileReader, domains DomainResolver, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		profiles:   profiles,
		domains:    domains,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates the account and its profile. An address on a known
// university domain makes the user a verified student of that university;
// any other address starts as a pre-student.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	if _, err := mail.ParseAddress(email); err != nil || fullName == "" || len(req.Password) < minPasswordLength {
		return nil, ErrInvalidInput
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if existing != nil {
		return nil, ErrUserExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	universityID, err := s.domains.UniversityByEmailDomain(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	profile := &models.Profile{
		ID:                uuid.New(),
		UserID:            user.ID,
		FullName:          fullName,
		UniversityID:      universityID,
		IsVerifiedStudent: universityID != nil,
		IsPreStudent:      universityID == nil,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.Bool("pre_student", profile.IsPreStudent),
	)
	return s.issue(user, profile)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return s.issue(user, profile)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateTokenOfType(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.issue(user, profile)
}

func (s *AuthService) issue(user *models.User, profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.Email, profile.IsPreStudent)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			ID:                user.ID.String(),
			ProfileID:         profile.ID.String(),
			Email:             user.Email,
			IsVerifiedStudent: profile.IsVerifiedStudent,
			IsPreStudent:      profile.IsPreStudent,
		},
	}, nil
}

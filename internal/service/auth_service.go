package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/pkg/serverutils"
	"agency-site-be/internal/repository/contract"
	"agency-site-be/internal/repository/specification"
	"agency-site-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminRole        = "admin"
	adminTokenExpiry = 12 * time.Hour
)

// dummyHash keeps unknown-email logins as slow as wrong-password ones.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// EnsureAdmin creates the admin account or resets its password.
	EnsureAdmin(ctx context.Context, email, password, name string) (*entity.AdminUser, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.AdminUserRepository().FindOne(ctx, specification.ByEmail{Email: strings.TrimSpace(req.Email)})
	if err != nil {
		return nil, err
	}

	hash := dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(req.Password)); err != nil || user == nil {
		s.logger.Warn("AUTH", "Failed admin login", map[string]interface{}{"email": req.Email})
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(adminTokenExpiry)
	token, err := serverutils.IssueToken(user.Id.String(), adminRole, adminTokenExpiry)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := uow.AdminUserRepository().Update(ctx, user); err != nil {
		s.logger.Warn("AUTH", "Failed to record last login", map[string]interface{}{"error": err})
	}

	s.logger.Info("AUTH", "Admin logged in", map[string]interface{}{"user_id": user.Id.String()})

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserId:    user.Id,
		Name:      user.Name,
	}, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password, name string) (*entity.AdminUser, error) {
	if len(password) < 8 {
		return nil, errors.New("admin password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AdminUserRepository()

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.AdminUser{
			Id:           uuid.New(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         name,
			CreatedAt:    time.Now(),
		}
		err = repo.Create(ctx, user)
	} else {
		user.PasswordHash = string(hash)
		user.Name = name
		err = repo.Update(ctx, user)
	}
	if errors.Is(err, contract.ErrDuplicateKey) {
		return nil, errors.New("admin email already exists")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

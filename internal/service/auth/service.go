package auth

import (
	"context"
	"fmt"

	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/repository"
	"github.com/medibook/medibook-api/pkg/auth"
	apperr "github.com/medibook/medibook-api/pkg/errors"
	"github.com/medibook/medibook-api/pkg/security"
)

// AdminCredentials is the single admin account, configured from the
// environment rather than stored.
type AdminCredentials struct {
	Email    string
	Password string
}

type Service struct {
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorRepository
	jwtSvc     *auth.JWTService
	hasher     security.PasswordHasher
	admin      AdminCredentials
}

func NewService(
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	jwtSvc *auth.JWTService,
	hasher security.PasswordHasher,
	admin AdminCredentials,
) *Service {
	return &Service{
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		jwtSvc:     jwtSvc,
		hasher:     hasher,
		admin:      admin,
	}
}

// RegisterUser creates a patient account and returns an access token.
func (s *Service) RegisterUser(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperr.Validation("email already registered")
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user.ID.Hex(), model.RolePatient)
}

// LoginUser authenticates a patient by email and password.
func (s *Service) LoginUser(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := s.hasher.Compare(user.Password, req.Password); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return s.issueToken(user.ID.Hex(), model.RolePatient)
}

// LoginDoctor authenticates a doctor by email and password.
func (s *Service) LoginDoctor(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	doctor, err := s.doctorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := s.hasher.Compare(doctor.Password, req.Password); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return s.issueToken(doctor.ID.Hex(), model.RoleDoctor)
}

// LoginAdmin checks the request against the configured admin credentials.
func (s *Service) LoginAdmin(_ context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	if s.admin.Email == "" || req.Email != s.admin.Email || req.Password != s.admin.Password {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return s.issueToken("", model.RoleAdmin)
}

// ValidateToken verifies a token and returns its claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*model.TokenClaims, error) {
	return s.jwtSvc.ValidateToken(token)
}

func (s *Service) issueToken(subject string, role model.Role) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.GenerateToken(subject, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{Token: token}, nil
}

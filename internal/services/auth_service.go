package services

import (
	"errors"

	"apptnu_backend/internal/auth"
	"apptnu_backend/internal/models"
	"apptnu_backend/internal/repositories"
	"apptnu_backend/internal/services/dto"
	"apptnu_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	issuer   *auth.TokenIssuer
}

func NewAuthService(userRepo repositories.UserRepository, issuer *auth.TokenIssuer) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, issuer: issuer}
}

// Register creates an institutional member account with a pending
// membership and returns a signed token for immediate use.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleMember,

		InstitutionName:  req.InstitutionName,
		HeadLibrarian:    req.HeadLibrarian,
		HeadPhone:        req.HeadPhone,
		Agency:           req.Agency,
		PICName:          req.PICName,
		PICPhone:         req.PICPhone,
		FullAddress:      req.FullAddress,
		Province:         models.Province(req.Province),
		InstitutionEmail: req.InstitutionEmail,
		WebsiteURL:       req.WebsiteURL,
		AutomationURL:    req.AutomationURL,
		RepositoryStatus: models.RepositoryStatus(req.RepositoryStatus),
		CollectionCount:  req.CollectionCount,
		Accreditation:    models.AccreditationStatus(req.Accreditation),
		MembershipType:   models.MembershipType(req.MembershipType),

		MembershipStatus: models.MembershipStatusPending,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := s.issuer.Generate(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

// Login checks credentials. An unknown email and a wrong password produce
// the same error so the endpoint does not leak which emails exist.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issuer.Generate(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

package services

import (
	"errors"

	"apptnu_backend/internal/models"
	"apptnu_backend/internal/repositories"
	"apptnu_backend/internal/services/dto"
	"apptnu_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(userID string) (*models.User, error)
	UpdateUser(userID string, req *dto.AdminUpdateUserRequest) (*models.User, error)
	DeleteUser(userID string) error
	ListUsers(q *dto.UserListQuery) ([]models.User, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound(userID)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// UpdateUser applies a partial update; absent fields are left as they are.
func (s *UserServiceImpl) UpdateUser(userID string, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	upd := repositories.UserUpdate{
		Email:            req.Email,
		InstitutionName:  req.InstitutionName,
		HeadLibrarian:    req.HeadLibrarian,
		HeadPhone:        req.HeadPhone,
		Agency:           req.Agency,
		PICName:          req.PICName,
		PICPhone:         req.PICPhone,
		FullAddress:      req.FullAddress,
		InstitutionEmail: req.InstitutionEmail,
		WebsiteURL:       req.WebsiteURL,
		AutomationURL:    req.AutomationURL,
		CollectionCount:  req.CollectionCount,
	}

	if req.Province != nil {
		p := models.Province(*req.Province)
		upd.Province = &p
	}
	if req.RepositoryStatus != nil {
		rs := models.RepositoryStatus(*req.RepositoryStatus)
		upd.RepositoryStatus = &rs
	}
	if req.Accreditation != nil {
		a := models.AccreditationStatus(*req.Accreditation)
		upd.Accreditation = &a
	}
	if req.MembershipType != nil {
		mt := models.MembershipType(*req.MembershipType)
		upd.MembershipType = &mt
	}
	if req.MembershipStatus != nil {
		ms := models.MembershipStatus(*req.MembershipStatus)
		upd.MembershipStatus = &ms
	}

	user, err := s.userRepo.UpdatePartial(userID, upd)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound(userID)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) DeleteUser(userID string) error {
	err := s.userRepo.Delete(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound(userID)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) ListUsers(q *dto.UserListQuery) ([]models.User, error) {
	filter := repositories.UserFilter{
		MembershipStatus: models.MembershipStatus(q.MembershipStatus),
		Province:         models.Province(q.Province),
		MembershipType:   models.MembershipType(q.MembershipType),
		Limit:            q.Limit,
		Offset:           q.Offset,
	}

	users, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

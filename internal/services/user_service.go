package services

import (
	"gorm.io/gorm"

	"findahand_backend/internal/auth"
	"findahand_backend/internal/models"
	"findahand_backend/internal/repositories"
	"findahand_backend/internal/services/dto"
	"findahand_backend/pkg/apperrors"
)

// UserService covers customer registration, login and profile reads.
type UserService interface {
	Register(db *gorm.DB, req *dto.RegisterUserRequest) (*dto.UserAuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.UserAuthResponse, error)
	GetProfile(db *gorm.DB, userID string) (*models.User, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewUserService(userRepo repositories.UserRepository, tokens *auth.TokenManager) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *UserServiceImpl) Register(db *gorm.DB, req *dto.RegisterUserRequest) (*dto.UserAuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        normalizeEmail(req.Email),
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Location:     req.Location,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.authResponse(user)
}

func (s *UserServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.UserAuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) authResponse(user *models.User) (*dto.UserAuthResponse, error) {
	token, err := s.tokens.Generate(user.ID, models.RoleCustomer)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserAuthResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Location:  user.Location,
		Token:     token,
	}, nil
}

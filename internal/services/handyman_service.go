package services

import (
	"strings"

	"gorm.io/gorm"

	"findahand_backend/internal/auth"
	"findahand_backend/internal/models"
	"findahand_backend/internal/repositories"
	"findahand_backend/internal/services/dto"
	"findahand_backend/pkg/apperrors"
)

// HandymanService covers handyman auth, the public directory and profile
// management.
type HandymanService interface {
	Register(db *gorm.DB, req *dto.RegisterHandymanRequest, profileImageURL string) (*dto.TokenResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetProfile(db *gorm.DB, handymanID string) (*dto.HandymanView, error)
	List(db *gorm.DB) ([]dto.HandymanView, error)
	GetByID(db *gorm.DB, id string) (*dto.HandymanDetailView, error)
	UpdateProfile(db *gorm.DB, handymanID string, req *dto.UpdateHandymanProfileRequest) (*dto.HandymanView, error)
	UpdatePassword(db *gorm.DB, handymanID string, req *dto.UpdatePasswordRequest) error
	UpdateAvailability(db *gorm.DB, handymanID string, available bool) (*dto.HandymanView, error)
	AddPortfolioImage(db *gorm.DB, handymanID, imageURL string) ([]string, error)
}

type HandymanServiceImpl struct {
	handymanRepo repositories.HandymanRepository
	tokens       *auth.TokenManager
}

func NewHandymanService(handymanRepo repositories.HandymanRepository, tokens *auth.TokenManager) HandymanService {
	return &HandymanServiceImpl{
		handymanRepo: handymanRepo,
		tokens:       tokens,
	}
}

func (s *HandymanServiceImpl) Register(db *gorm.DB, req *dto.RegisterHandymanRequest, profileImageURL string) (*dto.TokenResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	handyman := &models.Handyman{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        normalizeEmail(req.Email),
		Phone:        req.Phone,
		Location:     req.Location,
		PasswordHash: hashedPassword,
		Profession:   req.Profession,
		Experience:   req.Experience,
		HourlyRate:   req.HourlyRate,
		ProfileImage: profileImageURL,
		Available:    true,
	}
	handyman.SetSkills(splitSkills(req.Skills))
	handyman.SetPortfolioImages([]string{})

	if err := s.handymanRepo.Create(db, handyman); err != nil {
		if apperrors.Is(err, repositories.ErrHandymanAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.tokenResponse(handyman)
}

func (s *HandymanServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	handyman, err := s.handymanRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrHandymanNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, handyman.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.tokenResponse(handyman)
}

func (s *HandymanServiceImpl) GetProfile(db *gorm.DB, handymanID string) (*dto.HandymanView, error) {
	handyman, err := s.findHandyman(db, handymanID)
	if err != nil {
		return nil, err
	}

	view := s.toView(db, handyman)
	return &view, nil
}

// List returns the public directory: every handyman, password excluded, each
// annotated with a derived review count.
func (s *HandymanServiceImpl) List(db *gorm.DB) ([]dto.HandymanView, error) {
	handymen, err := s.handymanRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(handymen))
	for _, h := range handymen {
		ids = append(ids, h.ID)
	}
	counts, err := s.handymanRepo.CountReviews(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	views := make([]dto.HandymanView, 0, len(handymen))
	for i := range handymen {
		view := toHandymanView(&handymen[i])
		view.ReviewCount = counts[handymen[i].ID]
		views = append(views, view)
	}
	return views, nil
}

// GetByID returns one handyman with reviews populated with reviewer display
// names. Malformed identifiers are reported as not found.
func (s *HandymanServiceImpl) GetByID(db *gorm.DB, id string) (*dto.HandymanDetailView, error) {
	if !isValidID(id) {
		return nil, apperrors.ErrHandymanNotFound
	}

	handyman, err := s.handymanRepo.FindByIDWithReviews(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrHandymanNotFound) {
			return nil, apperrors.ErrHandymanNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	view := toHandymanView(handyman)
	view.ReviewCount = int64(len(handyman.Reviews))

	detail := &dto.HandymanDetailView{
		HandymanView: view,
		Reviews:      toReviewViews(handyman.Reviews),
	}
	return detail, nil
}

// UpdateProfile applies only the fields present in the request.
func (s *HandymanServiceImpl) UpdateProfile(db *gorm.DB, handymanID string, req *dto.UpdateHandymanProfileRequest) (*dto.HandymanView, error) {
	handyman, err := s.findHandyman(db, handymanID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		handyman.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		handyman.LastName = *req.LastName
	}
	if req.Phone != nil {
		handyman.Phone = *req.Phone
	}
	if req.Location != nil {
		handyman.Location = *req.Location
	}
	if req.Profession != nil {
		handyman.Profession = *req.Profession
	}
	if req.Skills != nil {
		handyman.SetSkills(*req.Skills)
	}
	if req.Experience != nil {
		handyman.Experience = *req.Experience
	}
	if req.HourlyRate != nil {
		handyman.HourlyRate = *req.HourlyRate
	}
	if req.Bio != nil {
		handyman.Bio = *req.Bio
	}

	if err := s.handymanRepo.Update(db, handyman); err != nil {
		return nil, apperrors.InternalError(err)
	}

	view := s.toView(db, handyman)
	return &view, nil
}

// UpdatePassword requires the current password to be re-entered.
func (s *HandymanServiceImpl) UpdatePassword(db *gorm.DB, handymanID string, req *dto.UpdatePasswordRequest) error {
	handyman, err := s.findHandyman(db, handymanID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, handyman.PasswordHash) {
		return apperrors.ErrWrongCurrentPassword
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	handyman.PasswordHash = hashedPassword

	if err := s.handymanRepo.Update(db, handyman); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *HandymanServiceImpl) UpdateAvailability(db *gorm.DB, handymanID string, available bool) (*dto.HandymanView, error) {
	handyman, err := s.findHandyman(db, handymanID)
	if err != nil {
		return nil, err
	}

	handyman.Available = available
	if err := s.handymanRepo.Update(db, handyman); err != nil {
		return nil, apperrors.InternalError(err)
	}

	view := s.toView(db, handyman)
	return &view, nil
}

// AddPortfolioImage appends an uploaded image URL and returns the full list.
func (s *HandymanServiceImpl) AddPortfolioImage(db *gorm.DB, handymanID, imageURL string) ([]string, error) {
	handyman, err := s.findHandyman(db, handymanID)
	if err != nil {
		return nil, err
	}

	images := append(handyman.GetPortfolioImages(), imageURL)
	handyman.SetPortfolioImages(images)

	if err := s.handymanRepo.Update(db, handyman); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return images, nil
}

func (s *HandymanServiceImpl) findHandyman(db *gorm.DB, id string) (*models.Handyman, error) {
	if !isValidID(id) {
		return nil, apperrors.ErrHandymanNotFound
	}
	handyman, err := s.handymanRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrHandymanNotFound) {
			return nil, apperrors.ErrHandymanNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return handyman, nil
}

func (s *HandymanServiceImpl) tokenResponse(handyman *models.Handyman) (*dto.TokenResponse, error) {
	token, err := s.tokens.Generate(handyman.ID, models.RoleHandyman)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.TokenResponse{Token: token}, nil
}

func (s *HandymanServiceImpl) toView(db *gorm.DB, handyman *models.Handyman) dto.HandymanView {
	view := toHandymanView(handyman)
	counts, err := s.handymanRepo.CountReviews(db, []string{handyman.ID})
	if err == nil {
		view.ReviewCount = counts[handyman.ID]
	}
	return view
}

func toHandymanView(h *models.Handyman) dto.HandymanView {
	return dto.HandymanView{
		ID:              h.ID,
		FirstName:       h.FirstName,
		LastName:        h.LastName,
		Email:           h.Email,
		Phone:           h.Phone,
		Location:        h.Location,
		Profession:      h.Profession,
		Skills:          h.GetSkills(),
		Experience:      h.Experience,
		HourlyRate:      h.HourlyRate,
		Bio:             h.Bio,
		ProfileImage:    h.ProfileImage,
		PortfolioImages: h.GetPortfolioImages(),
		Available:       h.Available,
		Rating:          h.Rating,
	}
}

func splitSkills(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

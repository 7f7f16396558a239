package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	vendorRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/vendor"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/vendors/models"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/authtoken"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

const minPasswordLength = 6

// Service сервис аккаунтов вендоров: регистрация, вход, публичный
// справочник и переключение приема бронирований
type Service struct {
	vendorRepo VendorRepository
	cache      VendorCache
	logger     Logger

	jwtSecret string
	tokenTTL  time.Duration
}

// NewService создает новый экземпляр сервиса вендоров
func NewService(
	vendorRepo VendorRepository,
	cache VendorCache,
	logger Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		vendorRepo: vendorRepo,
		cache:      cache,
		logger:     logger,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

// Register регистрирует нового вендора и сразу выдает сессионный токен
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Register: registering vendor email=%s", req.Email)

	vendor, err := s.buildVendor(req)
	if err != nil {
		s.logger.Warn("Register: validation failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - failed to hash password: %w", ErrInternal, err)
	}
	vendor.PasswordHash = string(hash)

	created, err := s.vendorRepo.Create(ctx, vendor)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Register - repository error: %w", ErrInternal, err)
	}

	// Новый вендор открыт по умолчанию, справочник устарел
	s.cache.Invalidate(ctx)

	resp, err := s.authResponse(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Register: successfully registered vendor id=%d", created.ID)
	return resp, nil
}

// Login проверяет учетные данные и выдает сессионный токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	s.logger.Info("Login: vendor email=%s", email)

	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	vendor, err := s.vendorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for vendor id=%d", vendor.ID)
		return nil, ErrInvalidCredentials
	}

	resp, err := s.authResponse(vendor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Login: vendor id=%d logged in", vendor.ID)
	return resp, nil
}

// GetByID возвращает профиль вендора
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VendorResponse, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("GetByID: vendor id=%d not found", id)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("GetByID: repository error for vendor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainVendor(vendor), nil
}

// ListOpen возвращает публичный справочник открытых вендоров.
// Читает из кеша, при промахе идет в БД и заполняет кеш.
func (s *Service) ListOpen(ctx context.Context) (*models.VendorListResponse, error) {
	if cached, ok := s.cache.GetOpenVendors(ctx); ok {
		s.logger.Info("ListOpen: served %d vendors from cache", len(cached))
		vendors := make([]*domain.Vendor, len(cached))
		for i := range cached {
			vendors[i] = &cached[i]
		}
		return models.FromDomainVendorList(vendors), nil
	}

	vendors, err := s.vendorRepo.ListOpen(ctx)
	if err != nil {
		s.logger.Error("ListOpen: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOpen - repository error: %w", ErrInternal, err)
	}

	flat := make([]domain.Vendor, len(vendors))
	for i, v := range vendors {
		stripped := *v
		// Хеш пароля не должен попадать в кеш
		stripped.PasswordHash = ""
		flat[i] = stripped
	}
	s.cache.SetOpenVendors(ctx, flat)

	s.logger.Info("ListOpen: fetched %d vendors from repository", len(vendors))
	return models.FromDomainVendorList(vendors), nil
}

// ToggleOpen инвертирует флаг приема бронирований вендора
func (s *Service) ToggleOpen(ctx context.Context, vendorID int64) (*models.ToggleOpenResponse, error) {
	s.logger.Info("ToggleOpen: vendor id=%d", vendorID)

	isOpen, err := s.vendorRepo.ToggleOpen(ctx, vendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("ToggleOpen: vendor id=%d not found", vendorID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("ToggleOpen: repository error for vendor id=%d: %v", vendorID, err)
		return nil, fmt.Errorf("%w: ToggleOpen - repository error: %w", ErrInternal, err)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("ToggleOpen: vendor id=%d is now open=%v", vendorID, isOpen)
	return &models.ToggleOpenResponse{VendorID: vendorID, IsOpen: isOpen}, nil
}

// buildVendor валидирует запрос регистрации и собирает domain модель
func (s *Service) buildVendor(req *models.RegisterRequest) (*domain.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	start, err := types.NewTimeStringFromString(req.WorkingStart)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid workingStart, expected HH:MM", ErrInvalidInput)
	}
	end, err := types.NewTimeStringFromString(req.WorkingEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid workingEnd, expected HH:MM", ErrInvalidInput)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: workingStart must be before workingEnd", ErrInvalidInput)
	}

	services := make([]domain.VendorService, 0, len(req.Services))
	seen := make(map[string]struct{}, len(req.Services))
	for _, svc := range req.Services {
		svcName := strings.TrimSpace(svc.Name)
		if svcName == "" {
			return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
		}
		if _, dup := seen[svcName]; dup {
			return nil, fmt.Errorf("%w: duplicate service %q", ErrInvalidInput, svcName)
		}
		seen[svcName] = struct{}{}
		if svc.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
		}
		if svc.Price < 0 {
			return nil, fmt.Errorf("%w: service price must not be negative", ErrInvalidInput)
		}
		services = append(services, domain.VendorService{
			Name:            svcName,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}

	return &domain.Vendor{
		Name:        name,
		Email:       email,
		Category:    strings.TrimSpace(req.Category),
		Location:    strings.TrimSpace(req.Location),
		Description: strings.TrimSpace(req.Description),
		Phone:       strings.TrimSpace(req.Phone),
		IsOpen:      true,
		WorkingHours: domain.WorkingHours{
			Start: start,
			End:   end,
		},
		Services: services,
		Subscription: domain.Subscription{
			Status: domain.SubscriptionInactive,
		},
	}, nil
}

func (s *Service) authResponse(v *domain.Vendor) (*models.AuthResponse, error) {
	token, err := authtoken.Generate(s.jwtSecret, v.ID, s.tokenTTL)
	if err != nil {
		s.logger.Error("authResponse: failed to generate token for vendor id=%d: %v", v.ID, err)
		return nil, fmt.Errorf("%w: failed to generate token: %w", ErrInternal, err)
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(s.tokenTTL),
		Vendor:    models.FromDomainVendor(v),
	}, nil
}

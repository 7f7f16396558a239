package vendors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	vendorRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/vendor"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/vendors/models"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/authtoken"
)

type fakeVendorRepo struct {
	created    *domain.Vendor
	createErr  error
	byEmail    *domain.Vendor
	openList   []*domain.Vendor
	toggleOpen bool
	toggleErr  error
}

func (f *fakeVendorRepo) Create(_ context.Context, v *domain.Vendor) (*domain.Vendor, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *v
	created.ID = 42
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeVendorRepo) GetByID(context.Context, int64) (*domain.Vendor, error) {
	if f.byEmail == nil {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return f.byEmail, nil
}

func (f *fakeVendorRepo) GetByEmail(context.Context, string) (*domain.Vendor, error) {
	if f.byEmail == nil {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return f.byEmail, nil
}

func (f *fakeVendorRepo) ListOpen(context.Context) ([]*domain.Vendor, error) {
	return f.openList, nil
}

func (f *fakeVendorRepo) ToggleOpen(context.Context, int64) (bool, error) {
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	return f.toggleOpen, nil
}

type fakeCache struct {
	cached      []domain.Vendor
	hit         bool
	setCalls    int
	invalidated int
	lastSet     []domain.Vendor
}

func (f *fakeCache) GetOpenVendors(context.Context) ([]domain.Vendor, bool) {
	return f.cached, f.hit
}

func (f *fakeCache) SetOpenVendors(_ context.Context, vendors []domain.Vendor) {
	f.setCalls++
	f.lastSet = vendors
}

func (f *fakeCache) Invalidate(context.Context) {
	f.invalidated++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRegisterRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:         "Салон Уют",
		Email:        "Salon@Example.com",
		Password:     "secret123",
		Category:     "salon",
		Location:     "Moscow",
		WorkingStart: "09:00",
		WorkingEnd:   "18:00",
		Services: []models.ServiceInput{
			{Name: "Haircut", DurationMinutes: 30, Price: 500},
		},
	}
}

func newTestService(vr *fakeVendorRepo, c *fakeCache) *Service {
	return NewService(vr, c, nopLogger{}, "test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("success issues session token", func(t *testing.T) {
		vr := &fakeVendorRepo{}
		c := &fakeCache{}
		svc := newTestService(vr, c)

		resp, err := svc.Register(context.Background(), validRegisterRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.Vendor.ID)
		assert.Equal(t, "salon@example.com", resp.Vendor.Email, "email is lowercased")
		assert.True(t, resp.Vendor.IsOpen, "new vendor starts open")
		assert.Equal(t, 1, c.invalidated, "directory cache is invalidated")

		claims, err := authtoken.Parse("test-secret", resp.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.VendorID)

		// пароль хранится только хешем
		require.NotNil(t, vr.created)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(vr.created.PasswordHash), []byte("secret123")))
	})

	t.Run("taken email", func(t *testing.T) {
		vr := &fakeVendorRepo{createErr: vendorRepo.ErrEmailTaken}
		svc := newTestService(vr, &fakeCache{})

		_, err := svc.Register(context.Background(), validRegisterRequest())
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestService(&fakeVendorRepo{}, &fakeCache{})

		tests := []struct {
			name   string
			mutate func(*models.RegisterRequest)
		}{
			{"empty name", func(r *models.RegisterRequest) { r.Name = "" }},
			{"email without at sign", func(r *models.RegisterRequest) { r.Email = "not-an-email" }},
			{"short password", func(r *models.RegisterRequest) { r.Password = "12345" }},
			{"bad working start", func(r *models.RegisterRequest) { r.WorkingStart = "9am" }},
			{"start after end", func(r *models.RegisterRequest) { r.WorkingStart = "19:00" }},
			{"start equals end", func(r *models.RegisterRequest) { r.WorkingStart = "18:00" }},
			{"service without name", func(r *models.RegisterRequest) { r.Services[0].Name = "" }},
			{"zero duration", func(r *models.RegisterRequest) { r.Services[0].DurationMinutes = 0 }},
			{"negative price", func(r *models.RegisterRequest) { r.Services[0].Price = -1 }},
			{"duplicate service", func(r *models.RegisterRequest) {
				r.Services = append(r.Services, models.ServiceInput{Name: "Haircut", DurationMinutes: 15, Price: 100})
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validRegisterRequest()
				tt.mutate(req)

				_, err := svc.Register(context.Background(), req)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	vendor := &domain.Vendor{ID: 42, Email: "salon@example.com", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		svc := newTestService(&fakeVendorRepo{byEmail: vendor}, &fakeCache{})

		resp, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "Salon@Example.COM",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.Vendor.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestService(&fakeVendorRepo{byEmail: vendor}, &fakeCache{})

		_, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "salon@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to same error", func(t *testing.T) {
		svc := newTestService(&fakeVendorRepo{}, &fakeCache{})

		_, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := newTestService(&fakeVendorRepo{}, &fakeCache{})

		_, err := svc.Login(context.Background(), &models.LoginRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListOpen(t *testing.T) {
	t.Run("cache miss fills cache without password hashes", func(t *testing.T) {
		vr := &fakeVendorRepo{openList: []*domain.Vendor{
			{ID: 1, Name: "Уют", IsOpen: true, PasswordHash: "hash"},
		}}
		c := &fakeCache{}
		svc := newTestService(vr, c)

		resp, err := svc.ListOpen(context.Background())
		require.NoError(t, err)
		require.Len(t, resp.Vendors, 1)

		assert.Equal(t, 1, c.setCalls)
		require.Len(t, c.lastSet, 1)
		assert.Empty(t, c.lastSet[0].PasswordHash)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		c := &fakeCache{
			hit:    true,
			cached: []domain.Vendor{{ID: 1, Name: "Уют", IsOpen: true}},
		}
		svc := newTestService(&fakeVendorRepo{}, c)

		resp, err := svc.ListOpen(context.Background())
		require.NoError(t, err)
		require.Len(t, resp.Vendors, 1)
		assert.Equal(t, 0, c.setCalls)
	})
}

func TestToggleOpen(t *testing.T) {
	t.Run("toggles and invalidates cache", func(t *testing.T) {
		vr := &fakeVendorRepo{toggleOpen: false}
		c := &fakeCache{}
		svc := newTestService(vr, c)

		resp, err := svc.ToggleOpen(context.Background(), 42)
		require.NoError(t, err)
		assert.False(t, resp.IsOpen)
		assert.Equal(t, 1, c.invalidated)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		vr := &fakeVendorRepo{toggleErr: vendorRepo.ErrVendorNotFound}
		svc := newTestService(vr, &fakeCache{})

		_, err := svc.ToggleOpen(context.Background(), 404)
		assert.ErrorIs(t, err, ErrVendorNotFound)
	})
}

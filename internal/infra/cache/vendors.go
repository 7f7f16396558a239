package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/config"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/logger"
)

const openVendorsKey = "vendors:open"

// VendorCache кеш справочника открытых вендоров. Промах или ошибка кеша
// никогда не ломают запрос, источник истины остается в БД.
type VendorCache interface {
	GetOpenVendors(ctx context.Context) ([]domain.Vendor, bool)
	SetOpenVendors(ctx context.Context, vendors []domain.Vendor)
	Invalidate(ctx context.Context)
	Close() error
}

// RedisVendorCache реализация VendorCache поверх go-redis
type RedisVendorCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisVendorCache подключается к Redis и проверяет соединение
func NewRedisVendorCache(cfg config.RedisConfig, log *logger.Logger) (*RedisVendorCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisVendorCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
		log:    log,
	}, nil
}

// GetOpenVendors возвращает закешированный список открытых вендоров.
// Второе значение false при промахе или ошибке.
func (c *RedisVendorCache) GetOpenVendors(ctx context.Context) ([]domain.Vendor, bool) {
	raw, err := c.client.Get(ctx, openVendorsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache: failed to get %s: %v", openVendorsKey, err)
		}
		return nil, false
	}

	var vendors []domain.Vendor
	if err := json.Unmarshal(raw, &vendors); err != nil {
		c.log.Warn("cache: failed to unmarshal %s: %v", openVendorsKey, err)
		return nil, false
	}

	return vendors, true
}

// SetOpenVendors кеширует список открытых вендоров с TTL из конфига
func (c *RedisVendorCache) SetOpenVendors(ctx context.Context, vendors []domain.Vendor) {
	raw, err := json.Marshal(vendors)
	if err != nil {
		c.log.Warn("cache: failed to marshal %s: %v", openVendorsKey, err)
		return
	}

	if err := c.client.Set(ctx, openVendorsKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache: failed to set %s: %v", openVendorsKey, err)
	}
}

// Invalidate сбрасывает кеш справочника. Вызывается при регистрации
// вендора и при переключении is_open.
func (c *RedisVendorCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, openVendorsKey).Err(); err != nil {
		c.log.Warn("cache: failed to invalidate %s: %v", openVendorsKey, err)
	}
}

// Close закрывает соединение с Redis
func (c *RedisVendorCache) Close() error {
	return c.client.Close()
}

// NopVendorCache заглушка на случай выключенного кеша
type NopVendorCache struct{}

func NewNopVendorCache() *NopVendorCache { return &NopVendorCache{} }

func (NopVendorCache) GetOpenVendors(context.Context) ([]domain.Vendor, bool) { return nil, false }
func (NopVendorCache) SetOpenVendors(context.Context, []domain.Vendor)        {}
func (NopVendorCache) Invalidate(context.Context)                             {}
func (NopVendorCache) Close() error                                           { return nil }

package cache

import (
	"context"
	"errors"
	"time"

	"RateSpread/internal/domain/models"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service defines series cache operations.
type Service interface {
	Set(ctx context.Context, key string, s *models.Series, expiration time.Duration) error
	Get(ctx context.Context, key string) (*models.Series, error)
	Delete(ctx context.Context, keys ...string) error
}

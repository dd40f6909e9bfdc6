package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"secretario/internal/platform/redis"
	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/platform/sentinel"
)

const cachePrefix = "settings:"

// Service reads settings through an optional Redis cache. Cache failures
// degrade to direct store reads; they are logged, never surfaced.
type Service struct {
	store  Store
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewService(store Store, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Get returns one setting, read through the cache.
func (s *Service) Get(ctx context.Context, key string) (*Setting, error) {
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}
	setting, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "setting not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "get setting", err)
	}
	s.fillCache(ctx, setting)
	return setting, nil
}

// Set validates the value against its declared type, persists it and drops
// the cache entry.
func (s *Service) Set(ctx context.Context, setting *Setting) (*Setting, error) {
	if setting.Key == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "setting key is required")
	}
	if setting.ValueType == "" {
		setting.ValueType = TypeString
	}
	switch setting.ValueType {
	case TypeString:
	case TypeInt:
		if _, err := strconv.Atoi(setting.Value); err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "value is not an integer")
		}
	case TypeBool:
		if _, err := strconv.ParseBool(setting.Value); err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "value is not a boolean")
		}
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown value type")
	}

	if err := s.store.Set(ctx, setting); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "set setting", err)
	}
	s.dropCache(ctx, setting.Key)
	return setting, nil
}

// List returns every setting, bypassing the cache.
func (s *Service) List(ctx context.Context) ([]*Setting, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list settings", err)
	}
	if out == nil {
		out = []*Setting{}
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "setting not found")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "delete setting", err)
	}
	s.dropCache(ctx, key)
	return nil
}

// Int reads an integer setting, returning fallback when the key is absent.
func (s *Service) Int(ctx context.Context, key string, fallback int) (int, error) {
	setting, err := s.Get(ctx, key)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return fallback, nil
		}
		return 0, err
	}
	n, convErr := strconv.Atoi(setting.Value)
	if convErr != nil {
		return fallback, nil
	}
	return n, nil
}

// String reads a string setting, returning fallback when the key is absent.
func (s *Service) String(ctx context.Context, key, fallback string) (string, error) {
	setting, err := s.Get(ctx, key)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return fallback, nil
		}
		return "", err
	}
	return setting.Value, nil
}

func (s *Service) fromCache(ctx context.Context, key string) *Setting {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cachePrefix+key).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) && s.logger != nil {
			s.logger.WarnContext(ctx, "settings cache read failed", "key", key, "error", err)
		}
		return nil
	}
	var setting Setting
	if err := json.Unmarshal([]byte(raw), &setting); err != nil {
		s.dropCache(ctx, key)
		return nil
	}
	return &setting
}

func (s *Service) fillCache(ctx context.Context, setting *Setting) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(setting)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cachePrefix+setting.Key, raw, s.ttl).Err(); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "settings cache write failed", "key", setting.Key, "error", err)
	}
}

func (s *Service) dropCache(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cachePrefix+key).Err(); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "settings cache invalidation failed", "key", key, "error", err)
	}
}

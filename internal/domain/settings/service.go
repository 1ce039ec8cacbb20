package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const allowlistCacheTTL = 5 * time.Minute

type Service struct {
	repo  Repository
	redis *redis.Client
}

// NewService accepts a nil redis client; allowlist lookups then go to the
// database on every call.
func NewService(repo Repository, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redis: redisClient}
}

func (s *Service) ListConfig(ctx context.Context) ([]*ConfigEntry, error) {
	return s.repo.ListConfig(ctx)
}

func (s *Service) GetConfig(ctx context.Context, key string) (*ConfigEntry, error) {
	entry, err := s.repo.GetConfig(ctx, key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

func (s *Service) UpsertConfig(ctx context.Context, req *UpsertConfigRequest) (*ConfigEntry, error) {
	entry, err := s.repo.UpsertConfig(ctx, req.Key, req.Value)
	if err != nil {
		return nil, err
	}

	log.Info().Str("key", entry.Key).Msg("system config updated")
	return entry, nil
}

func (s *Service) ListAllowedIPs(ctx context.Context) ([]*AllowedIP, error) {
	return s.repo.ListAllowedIPs(ctx)
}

func (s *Service) AddAllowedIP(ctx context.Context, req *AddAllowedIPRequest) (*AllowedIP, error) {
	ip := &AllowedIP{
		ID:        uuid.New(),
		Address:   req.Address,
		Label:     req.Label,
		CreatedAt: time.Now(),
	}
	if req.OutletID != nil {
		ip.OutletID = uuid.NullUUID{UUID: *req.OutletID, Valid: true}
	}
	if err := s.repo.AddAllowedIP(ctx, ip); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	log.Info().Str("address", ip.Address).Msg("address allowlisted")
	return ip, nil
}

func (s *Service) RemoveAllowedIP(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.RemoveAllowedIP(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	log.Info().Str("id", id.String()).Msg("address removed from allowlist")
	return nil
}

// IsAllowed satisfies the login gate's allowlist check. Results are
// cached briefly in Redis so the login path does not hit Postgres on
// every attempt.
func (s *Service) IsAllowed(ctx context.Context, address string) (bool, error) {
	cacheKey := "allowlist:" + address

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached == "1", nil
		}
	}

	allowed, err := s.repo.IsAllowedIP(ctx, address)
	if err != nil {
		return false, err
	}

	if s.redis != nil {
		value := "0"
		if allowed {
			value = "1"
		}
		if err := s.redis.Set(ctx, cacheKey, value, allowlistCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Msg("failed to cache allowlist result")
		}
	}
	return allowed, nil
}

// invalidateCache drops every cached allowlist answer. Adding or removing
// an entry can flip the verdict for addresses that were never listed,
// since an empty list admits everyone, so a single-key delete is not
// enough.
func (s *Service) invalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, "allowlist:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.redis.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate allowlist cache")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("failed to scan allowlist cache")
	}
}

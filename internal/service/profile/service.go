package profile

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/repository"
)

const cacheKey = "profile"

// Service reads and caches the single caregiving-subject profile. The
// scheduler fetches a snapshot once per pass; the short TTL keeps both
// processes from refetching on every call.
type Service struct {
	repo  repository.ProfileRepository
	cache *cache.Cache
}

func NewService(repo repository.ProfileRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(time.Minute, 5*time.Minute),
	}
}

// Get returns the profile, or a default when none exists. Errors degrade
// to the default profile: a missing name must never block a reminder.
func (s *Service) Get(ctx context.Context) *model.Profile {
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*model.Profile)
	}

	p, err := s.repo.Get(ctx)
	if err != nil || p == nil {
		return &model.Profile{Name: "Usuario"}
	}

	s.cache.Set(cacheKey, p, cache.DefaultExpiration)
	return p
}

// Upsert saves the profile and invalidates the snapshot.
func (s *Service) Upsert(ctx context.Context, p *model.Profile) error {
	if err := s.repo.Upsert(ctx, p); err != nil {
		return err
	}
	s.cache.Delete(cacheKey)
	return nil
}

package exercises

import (
	"context"

	"github.com/2beens/ironlog/internal/cache"

	log "github.com/sirupsen/logrus"
)

// CachedRepo keeps each user's visible catalog in memory. A user's entry is
// dropped whenever that user adds an exercise; the global part only changes
// through migrations.
type CachedRepo struct {
	repo  exercisesRepo
	cache cache.Cache
}

func NewCachedRepo(repo exercisesRepo, cache cache.Cache) *CachedRepo {
	return &CachedRepo{
		repo:  repo,
		cache: cache,
	}
}

func (r *CachedRepo) ListVisible(ctx context.Context, userID int) ([]Exercise, error) {
	if cached, found := r.cache.Get(userID); found {
		if list, ok := cached.([]Exercise); ok {
			return list, nil
		}
		log.Warnf("exercise catalog cache: unexpected value for user %d", userID)
	}

	list, err := r.repo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.cache.Set(userID, list, int64(len(list)+1))
	return list, nil
}

func (r *CachedRepo) Add(ctx context.Context, userID int, req NewExerciseRequest) (*Exercise, error) {
	exercise, err := r.repo.Add(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	r.cache.Del(userID)
	return exercise, nil
}

package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// InflightRepository remembers which users currently have a generation
// attempt queued or running, so a second request cannot double-spend the
// quota token while the first is in the worker. Entries expire on their own
// in case a worker dies without clearing its mark.
type InflightRepository struct {
	cache *cache.Cache
}

func NewInflightRepository() *InflightRepository {
	// Generation attempts are bounded by the LLM timeout; anything older
	// than 10 minutes is stale, purge sweep every minute.
	c := cache.New(10*time.Minute, 1*time.Minute)
	return &InflightRepository{
		cache: c,
	}
}

func (r *InflightRepository) Mark(userId uuid.UUID, jobId uuid.UUID) {
	r.cache.Set(userId.String(), jobId, cache.DefaultExpiration)
}

func (r *InflightRepository) Get(userId uuid.UUID) (uuid.UUID, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *InflightRepository) Clear(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}

package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// InflightRepository tracks which sessions have a generation request in
// flight. Entries carry a TTL so a crashed or hung request can never wedge a
// session permanently.
type InflightRepository struct {
	cache *cache.Cache
}

func NewInflightRepository() *InflightRepository {
	// Safety expiration well above the generation client timeout; expired
	// flags are purged every minute.
	c := cache.New(5*time.Minute, 1*time.Minute)
	return &InflightRepository{
		cache: c,
	}
}

// TryAcquire marks a session as having an in-flight generation. Returns false
// if one is already running.
func (r *InflightRepository) TryAcquire(sessionID uuid.UUID) bool {
	err := r.cache.Add(sessionID.String(), true, cache.DefaultExpiration)
	return err == nil
}

func (r *InflightRepository) IsInflight(sessionID uuid.UUID) bool {
	_, found := r.cache.Get(sessionID.String())
	return found
}

// Release clears the flag. Called on both success and failure paths so the
// user can retry immediately after an error.
func (r *InflightRepository) Release(sessionID uuid.UUID) {
	r.cache.Delete(sessionID.String())
}

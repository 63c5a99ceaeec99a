package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// defaultCategory names the rate used when a category has none of its own.
const defaultCategory = "default"

// Store manages rate limiters for many clients across categories. A client
// gets an independent bucket in every category it uses.
type Store struct {
	limiters map[string]*Limiter
	rates    map[string]Rate
	mu       sync.RWMutex

	cleanupInterval time.Duration
	idleTTL         time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

// NewStore creates a store and starts its cleanup routine. Limiters idle
// for longer than idleTTL are dropped on every cleanup pass.
//
// Parameters:
//   - defaultRate: The rate applied to categories without their own
//   - cleanupInterval: How often idle limiters are removed
//   - idleTTL: How long a limiter may go unused before removal
//
// Returns:
//   - A configured limiter store; call Close to stop the cleanup routine
func NewStore(defaultRate Rate, cleanupInterval, idleTTL time.Duration) *Store {
	store := &Store{
		limiters:        make(map[string]*Limiter),
		rates:           map[string]Rate{defaultCategory: defaultRate},
		cleanupInterval: cleanupInterval,
		idleTTL:         idleTTL,
		stop:            make(chan struct{}),
	}

	go store.cleanupRoutine()

	return store
}

// GetLimiter returns the limiter of clientID within category, creating it
// with the category's rate on first use.
func (s *Store) GetLimiter(clientID, category string) *Limiter {
	key := category + "|" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created it between the two locks
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates[defaultCategory]
	}

	limiter = NewLimiter(rate.RequestsPerSecond, rate.Burst)
	s.limiters[key] = limiter
	return limiter
}

// SetRate sets the rate for a category. Existing limiters keep their rate.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Len returns the number of live limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Close stops the cleanup routine. It is safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.Cleanup(now)
		}
	}
}

// Cleanup removes limiters that have been idle since before now-idleTTL.
func (s *Store) Cleanup(now time.Time) {
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, limiter := range s.limiters {
		if limiter.idleSince(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}

	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", len(s.limiters)).Msg("Rate limiter cleanup")
	}
}

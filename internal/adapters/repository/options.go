package repository

import (
	"github.com/hooprank/hooprank/internal/domain/model"
)

// Option applies a configuration option to the MemoryRoster.
type Option func(*MemoryRoster)

// WithInitialCapacity pre-sizes the roster map for an expected
// athlete count.
func WithInitialCapacity(n int) Option {
	return func(s *MemoryRoster) {
		if n > 0 {
			s.roster = make(map[string]model.StatRecord, n)
		}
	}
}

package content

import (
	"sync"
	"time"
)

// Identified is any record addressed by a numeric id.
type Identified interface {
	GetID() int64
}

// Direction is the movement of a record within an ordered list.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection converts a path or query value into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), true
	default:
		return "", false
	}
}

// IDGenerator issues timestamp-derived ids. Ids are milliseconds since the epoch,
// bumped past the last issued id so two records created in the same
// millisecond never collide.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates a generator reading the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns a fresh id strictly greater than every id issued before.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// NextFor returns a fresh id that also differs from every id already in list.
func NextFor[T Identified](g *IDGenerator, list []T) int64 {
	id := g.Next()
	for IndexOf(list, id) >= 0 {
		id = g.Next()
	}
	return id
}

// IndexOf returns the position of the record with id, or -1.
func IndexOf[T Identified](list []T, id int64) int {
	for i, item := range list {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

// Append returns a new list with item added at the end.
func Append[T Identified](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

// DeleteByID returns a new list without the records matching id. The second
// result reports whether anything was removed.
func DeleteByID[T Identified](list []T, id int64) ([]T, bool) {
	out := make([]T, 0, len(list))
	removed := false
	for _, item := range list {
		if item.GetID() == id {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}

// UpdateByID returns a new list where the record matching id is replaced by fn's result.
func UpdateByID[T Identified](list []T, id int64, fn func(T) T) ([]T, bool) {
	out := make([]T, len(list))
	copy(out, list)
	idx := IndexOf(out, id)
	if idx < 0 {
		return out, false
	}
	out[idx] = fn(out[idx])
	return out, true
}

// Move swaps the record matching id with its neighbour in dir. Moving the
// first record up, the last record down, or an unknown id leaves the order
// unchanged and reports false.
func Move[T Identified](list []T, id int64, dir Direction) ([]T, bool) {
	out := make([]T, len(list))
	copy(out, list)

	idx := IndexOf(out, id)
	if idx < 0 {
		return out, false
	}

	var target int
	switch dir {
	case Up:
		target = idx - 1
	case Down:
		target = idx + 1
	default:
		return out, false
	}
	if target < 0 || target >= len(out) {
		return out, false
	}

	out[idx], out[target] = out[target], out[idx]
	return out, true
}

package engine

import (
	"sync"

	"github.com/velosport/recsvc/pkg/models"
)

// ProductStore holds product embeddings keyed by product id. Every
// product receives a durable integer index at first insertion;
// re-submitting an id overwrites the vector but keeps the index, so
// profile coordinates stay attached to the same product as the store
// grows. All access is serialized through an RWMutex.
type ProductStore struct {
	mu      sync.RWMutex
	index   map[string]int
	ids     []string
	vectors [][]float64
}

func NewProductStore() *ProductStore {
	return &ProductStore{index: make(map[string]int)}
}

// Put stores the embedding for id, overwriting any previous vector.
// The vector is copied; stored vectors are never mutated afterwards.
func (s *ProductStore) Put(id string, vec []float64) {
	stored := make([]float64, len(vec))
	copy(stored, vec)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[id]; ok {
		s.vectors[i] = stored
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.vectors = append(s.vectors, stored)
}

// Get returns the stored embedding for id. The returned slice must be
// treated as read-only.
func (s *ProductStore) Get(id string) ([]float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.vectors[i], true
}

// Index returns the durable index assigned to id at first insertion.
func (s *ProductStore) Index(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	return i, ok
}

func (s *ProductStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ids)
}

// Snapshot returns the ids in insertion order and their embeddings as
// a consistent view. Similarity scans iterate the snapshot so a batch
// update arriving mid-scan cannot shift positions under them.
func (s *ProductStore) Snapshot() ([]string, [][]float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	vectors := make([][]float64, len(s.vectors))
	copy(vectors, s.vectors)
	return ids, vectors
}

// ProfileStore holds per-user interaction-count vectors indexed by
// durable product index. Profiles are created lazily and grow on
// demand when an interaction touches a product indexed past their
// current length.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string][]float64
	users    []string
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string][]float64)}
}

// Record creates the user's profile at initialLen if absent, then
// bumps the coordinate at idx by 1.0. idx < 0 means the interacted
// product is unknown to the embedding store: the profile is still
// created but no coordinate changes. Creation, growth and increment
// happen under one lock acquisition.
func (s *ProfileStore) Record(userID string, idx, initialLen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		profile = make([]float64, initialLen)
		s.users = append(s.users, userID)
	}

	if idx >= 0 {
		if idx >= len(profile) {
			grown := make([]float64, idx+1)
			copy(grown, profile)
			profile = grown
		}
		profile[idx] += 1.0
	}

	s.profiles[userID] = profile
}

// Get returns a copy of the user's profile vector.
func (s *ProfileStore) Get(userID string) ([]float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(profile))
	copy(out, profile)
	return out, true
}

func (s *ProfileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.profiles)
}

// Snapshot returns user ids in profile-creation order with deep copies
// of their vectors. Profiles mutate in place, so the copy is what
// keeps concurrent similarity scans consistent.
func (s *ProfileStore) Snapshot() ([]string, [][]float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, len(s.users))
	copy(users, s.users)
	profiles := make([][]float64, len(users))
	for i, u := range users {
		p := s.profiles[u]
		out := make([]float64, len(p))
		copy(out, p)
		profiles[i] = out
	}
	return users, profiles
}

// InteractionLog keeps the append-only per-user interaction history.
// User order is first-interaction order, which makes the popularity
// count pass deterministic.
type InteractionLog struct {
	mu      sync.RWMutex
	history map[string][]models.Interaction
	users   []string
}

func NewInteractionLog() *InteractionLog {
	return &InteractionLog{history: make(map[string][]models.Interaction)}
}

func (l *InteractionLog) Append(userID string, rec models.Interaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.history[userID]; !ok {
		l.users = append(l.users, userID)
	}
	l.history[userID] = append(l.history[userID], rec)
}

// History returns a copy of the user's interaction sequence.
func (l *InteractionLog) History(userID string) []models.Interaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	h := l.history[userID]
	out := make([]models.Interaction, len(h))
	copy(out, h)
	return out
}

// Snapshot returns all histories in first-interaction user order.
// Entries are immutable once appended, so copying the slice headers is
// enough for a consistent view.
func (l *InteractionLog) Snapshot() ([]string, [][]models.Interaction) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	users := make([]string, len(l.users))
	copy(users, l.users)
	histories := make([][]models.Interaction, len(users))
	for i, u := range users {
		histories[i] = l.history[u]
	}
	return users, histories
}

// TotalCount is the sum of all history lengths.
func (l *InteractionLog) TotalCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := 0
	for _, h := range l.history {
		total += len(h)
	}
	return total
}

package engine

import (
	"context"
	"sync"

	"gymling/internal/storage"
)

// KV is the key-value collaborator the engine persists through.
type KV interface {
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// CreatureStore owns the cached creature and notifies subscribers whenever it changes.
type CreatureStore struct {
	kv KV

	mu     sync.Mutex
	cache  *Creature
	nextID int
	subs   map[int]func(Creature)
}

func NewCreatureStore(kv KV) *CreatureStore {
	return &CreatureStore{kv: kv, subs: map[int]func(Creature){}}
}

// loadCreature reads the stored creature over the defaults, or reports found=false.
func loadCreature(ctx context.Context, kv KV) (Creature, bool, error) {
	c := DefaultCreature()
	found, err := kv.Get(ctx, storage.KeyCreature, &c)
	if err != nil {
		return Creature{}, false, err
	}
	if !found {
		return DefaultCreature(), false, nil
	}
	return NormalizeCreature(c), true, nil
}

// Hydrate loads the creature from the store, seeding defaults on first run.
func (s *CreatureStore) Hydrate(ctx context.Context) (Creature, error) {
	c, found, err := loadCreature(ctx, s.kv)
	if err != nil {
		return Creature{}, err
	}
	if !found {
		if err := s.kv.Set(ctx, storage.KeyCreature, c); err != nil {
			return Creature{}, err
		}
	}
	s.publish(c)
	return c, nil
}

// Current returns the cached creature; ok is false until hydrated.
func (s *CreatureStore) Current() (Creature, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		return Creature{}, false
	}
	return s.cache.Clone(), true
}

// Get returns the cached creature, hydrating on first use.
func (s *CreatureStore) Get(ctx context.Context) (Creature, error) {
	if c, ok := s.Current(); ok {
		return c, nil
	}
	return s.Hydrate(ctx)
}

// Update applies fn to the current creature, persists the normalized result and notifies.
func (s *CreatureStore) Update(ctx context.Context, fn func(Creature) Creature) (Creature, error) {
	base, err := s.Get(ctx)
	if err != nil {
		return Creature{}, err
	}
	next := NormalizeCreature(fn(base))
	if err := s.kv.Set(ctx, storage.KeyCreature, next); err != nil {
		return Creature{}, err
	}
	s.publish(next)
	return next, nil
}

// Subscribe registers fn for change notifications. The returned func removes it.
func (s *CreatureStore) Subscribe(fn func(Creature)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// publish replaces the cache after a successful write made elsewhere (e.g. in a transaction).
func (s *CreatureStore) publish(c Creature) {
	s.mu.Lock()
	cp := c.Clone()
	s.cache = &cp
	listeners := make([]func(Creature), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(c.Clone())
	}
}

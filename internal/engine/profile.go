package engine

import (
	"context"
	"fmt"
	"strings"

	"gymling/internal/storage"
)

// Rename sets the creature's name and, when non-empty, its portrait URL.
func (s *Service) Rename(ctx context.Context, name, imageURL string) (Creature, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Creature{}, fmt.Errorf("creature %w", ErrNameRequired)
	}
	imageURL = strings.TrimSpace(imageURL)
	return s.creatures.Update(ctx, func(c Creature) Creature {
		c.Name = name
		if imageURL != "" {
			c.ImageURL = imageURL
		}
		return c
	})
}

// Reset wipes every stored key and reseeds the default creature and player stats.
func (s *Service) Reset(ctx context.Context) error {
	c := DefaultCreature()
	err := s.kv.WithTx(ctx, func(kv *storage.KVRepo) error {
		for _, key := range storage.AllKeys {
			if err := kv.Delete(ctx, key); err != nil {
				return err
			}
		}
		if err := kv.Set(ctx, storage.KeyCreature, c); err != nil {
			return err
		}
		return kv.Set(ctx, storage.KeyPlayerStats, DefaultPlayerStats())
	})
	if err != nil {
		return err
	}
	s.creatures.publish(c)
	s.log.Info("progress reset")
	return nil
}

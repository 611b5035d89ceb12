package engine

import (
	"log/slog"
	"strings"
)

type StatKey string

const (
	StatSTR StatKey = "str"
	StatAGI StatKey = "agi"
	StatSTA StatKey = "sta"
	StatINT StatKey = "int"
)

// Stats are the four creature attributes. They only ever grow.
type Stats struct {
	Str int `json:"str"`
	Agi int `json:"agi"`
	Sta int `json:"sta"`
	Int int `json:"int"`
}

func (s Stats) Total() int {
	return s.Str + s.Agi + s.Sta + s.Int
}

// Add returns s with d added component-wise.
func (s Stats) Add(d Stats) Stats {
	return Stats{
		Str: s.Str + d.Str,
		Agi: s.Agi + d.Agi,
		Sta: s.Sta + d.Sta,
		Int: s.Int + d.Int,
	}
}

// Flat returns a Stats with n in every field.
func Flat(n int) Stats {
	return Stats{Str: n, Agi: n, Sta: n, Int: n}
}

type BagItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Bag item ids with battle effects.
const (
	ItemSmallPotion = "potion-small"
	ItemSparkCharm  = "charm-spark"
	ItemSnack       = "snack"
)

type Creature struct {
	Name           string    `json:"name"`
	Level          int       `json:"level"`
	EvolutionStage int       `json:"evolutionStage"`
	XP             int       `json:"xp"`
	XPToNext       int       `json:"xpToNext"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Stats          Stats     `json:"stats"`
	Bag            []BagItem `json:"bag"`
}

// DisplayName falls back to a generic label when the creature has not been named yet.
func (c *Creature) DisplayName() string {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return "Your creature"
	}
	return c.Name
}

func (c *Creature) HasItem(id string) bool {
	if c == nil {
		return false
	}
	for _, it := range c.Bag {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate freely.
func (c Creature) Clone() Creature {
	out := c
	if c.Bag != nil {
		out.Bag = append([]BagItem(nil), c.Bag...)
	}
	return out
}

func (c Creature) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", c.Name),
		slog.Int("level", c.Level),
		slog.Int("stage", c.EvolutionStage),
		slog.Int("xp", c.XP),
		slog.Int("xp_to_next", c.XPToNext),
		slog.Int("str", c.Stats.Str),
		slog.Int("agi", c.Stats.Agi),
		slog.Int("sta", c.Stats.Sta),
		slog.Int("int", c.Stats.Int),
	)
}

// PlayerStats are account-wide counters, separate from the creature's own xp.
type PlayerStats struct {
	Energy int `json:"energy"`
	XP     int `json:"xp"`
}

type Element string

const (
	ElementFire      Element = "Fire"
	ElementWater     Element = "Water"
	ElementEarth     Element = "Earth"
	ElementAir       Element = "Air"
	ElementLightning Element = "Lightning"
	ElementShadow    Element = "Shadow"
	ElementLight     Element = "Light"
)

type Monster struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Level          int     `json:"level"`
	Element        Element `json:"element"`
	Health         int     `json:"health"`
	Attack         int     `json:"attack"`
	Defense        int     `json:"defense"`
	RecommendedStr int     `json:"recommendedStr"`
	Description    string  `json:"description"`
	XPReward       int     `json:"xpReward"`
	FeaturedLoot   string  `json:"featuredLoot"`
	Icon           string  `json:"icon"`
}

// Preparation holds the pre-battle toggles.
type Preparation struct {
	Fed    bool `json:"fed"`
	Charm  bool `json:"charm"`
	Potion bool `json:"potion"`
	Coop   bool `json:"coop"`
}

type PrepOption struct {
	Key         string
	Title       string
	Description string
}

var PrepOptions = []PrepOption{
	{Key: "fed", Title: "Feed creature", Description: "Gain +2 STA before battle."},
	{Key: "charm", Title: "Equip charm", Description: "Reduces incoming damage from the enemy element."},
	{Key: "potion", Title: "Queue potion", Description: "Auto-heal once when HP is low."},
	{Key: "coop", Title: "Invite friend", Description: "Adds ally strikes and +15% XP."},
}

// Has reports whether the option named key is on.
func (p Preparation) Has(key string) bool {
	switch key {
	case "fed":
		return p.Fed
	case "charm":
		return p.Charm
	case "potion":
		return p.Potion
	case "coop":
		return p.Coop
	}
	return false
}

// Toggle flips the option named key. Unknown keys are ignored.
func (p Preparation) Toggle(key string) Preparation {
	switch key {
	case "fed":
		p.Fed = !p.Fed
	case "charm":
		p.Charm = !p.Charm
	case "potion":
		p.Potion = !p.Potion
	case "coop":
		p.Coop = !p.Coop
	}
	return p
}

// Active returns the option keys switched on, in display order.
func (p Preparation) Active() []string {
	var out []string
	if p.Fed {
		out = append(out, "fed")
	}
	if p.Charm {
		out = append(out, "charm")
	}
	if p.Potion {
		out = append(out, "potion")
	}
	if p.Coop {
		out = append(out, "coop")
	}
	return out
}

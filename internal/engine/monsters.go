package engine

import (
	"fmt"
	"sort"
	"strings"
)

// AIRivalID identifies the procedurally generated rival.
const AIRivalID = "ai-rival"

// MatchmakingLevelWindow bounds how far from the creature's level a monster may be offered.
const MatchmakingLevelWindow = 10

var statElementAffinity = map[StatKey]Element{
	StatSTR: ElementFire,
	StatAGI: ElementAir,
	StatSTA: ElementEarth,
	StatINT: ElementLightning,
}

var elementOpposites = map[Element]Element{
	ElementFire:      ElementWater,
	ElementWater:     ElementFire,
	ElementEarth:     ElementAir,
	ElementAir:       ElementEarth,
	ElementLightning: ElementShadow,
	ElementShadow:    ElementLight,
	ElementLight:     ElementShadow,
}

var staticMonsters = []Monster{
	{ID: "hydra-prime", Name: "Hydra Prime", Level: 18, Element: ElementWater, Health: 260, Attack: 34, Defense: 22, RecommendedStr: 16,
		Description: "A regenerative serpent that splits into new heads when struck. Target the core crystal to stop the regen.",
		XPReward:    120, FeaturedLoot: "Phoenix Feather", Icon: "🐉"},
	{ID: "storm-wyrm", Name: "Storm Wyrm", Level: 14, Element: ElementLightning, Health: 210, Attack: 30, Defense: 16, RecommendedStr: 14,
		Description: "Sweeps the arena with charged winds that punish low agility.",
		XPReward:    100, FeaturedLoot: "Tempest Scale", Icon: "🌩️"},
	{ID: "iron-golem", Name: "Iron Golem", Level: 12, Element: ElementEarth, Health: 240, Attack: 24, Defense: 28, RecommendedStr: 15,
		Description: "Slow but unyielding guardian forged from haunted steel.",
		XPReward:    90, FeaturedLoot: "Shard of Fortitude", Icon: "🗿"},
	{ID: "night-geist", Name: "Night Geist", Level: 16, Element: ElementShadow, Health: 200, Attack: 32, Defense: 18, RecommendedStr: 13,
		Description: "Phases in and out of reality to siphon stamina.",
		XPReward:    110, FeaturedLoot: "Void Cloak", Icon: "👻"},
	{ID: "ember-rat", Name: "Ember Rat", Level: 5, Element: ElementFire, Health: 120, Attack: 16, Defense: 8, RecommendedStr: 8,
		Description: "A fiery scavenger that ignites the ground with each scurry.",
		XPReward:    60, FeaturedLoot: "Cinder Tail", Icon: "🐀"},
	{ID: "sapling-guardian", Name: "Sapling Guardian", Level: 2, Element: ElementEarth, Health: 90, Attack: 10, Defense: 6, RecommendedStr: 4,
		Description: "A tiny treant that defends the forest with thorny vines.",
		XPReward:    35, FeaturedLoot: "Verdant Twig", Icon: "🌱"},
	{ID: "tidal-sprite", Name: "Tidal Sprite", Level: 3, Element: ElementWater, Health: 100, Attack: 12, Defense: 7, RecommendedStr: 5,
		Description: "Splashes attackers with bursts of pressurized surf.",
		XPReward:    40, FeaturedLoot: "Bubble Pearl", Icon: "💧"},
	{ID: "gale-fox", Name: "Gale Fox", Level: 4, Element: ElementAir, Health: 110, Attack: 14, Defense: 8, RecommendedStr: 6,
		Description: "Dashes around opponents, slicing with wind-forged tails.",
		XPReward:    50, FeaturedLoot: "Wind Tail", Icon: "🦊"},
	{ID: "dune-scorpion", Name: "Dune Scorpion", Level: 7, Element: ElementEarth, Health: 150, Attack: 18, Defense: 12, RecommendedStr: 9,
		Description: "Ambushes foes beneath the sand with venom-tipped claws.",
		XPReward:    70, FeaturedLoot: "Sting Barbs", Icon: "🦂"},
	{ID: "glacier-owl", Name: "Glacier Owl", Level: 9, Element: ElementAir, Health: 170, Attack: 20, Defense: 14, RecommendedStr: 10,
		Description: "Freezes prey mid-flight with glacial winds.",
		XPReward:    80, FeaturedLoot: "Frost Feather", Icon: "🦉"},
	{ID: "pyro-colossus", Name: "Pyro Colossus", Level: 22, Element: ElementFire, Health: 320, Attack: 40, Defense: 26, RecommendedStr: 20,
		Description: "An ancient molten sentinel that erupts with magma fists.",
		XPReward:    150, FeaturedLoot: "Inferno Core", Icon: "🌋"},
	{ID: "void-singer", Name: "Void Singer", Level: 27, Element: ElementShadow, Health: 360, Attack: 44, Defense: 30, RecommendedStr: 23,
		Description: "Channels cosmic echoes to shatter defenses.",
		XPReward:    180, FeaturedLoot: "Echo Shard", Icon: "🎶"},
	{ID: "terra-leviathan", Name: "Terra Leviathan", Level: 32, Element: ElementEarth, Health: 420, Attack: 48, Defense: 38, RecommendedStr: 28,
		Description: "A slumbering behemoth that crushes foes with tectonic waves.",
		XPReward:    210, FeaturedLoot: "Gaia Scale", Icon: "🐋"},
	{ID: "astral-phoenix", Name: "Astral Phoenix", Level: 40, Element: ElementAir, Health: 480, Attack: 56, Defense: 34, RecommendedStr: 32,
		Description: "Reborn from stardust, bathes the arena in celestial fire.",
		XPReward:    260, FeaturedLoot: "Stellar Plume", Icon: "🔥"},
}

// DominantElement maps the creature's highest stat to its element. Ties keep STR, AGI, STA, INT order.
func DominantElement(c *Creature) Element {
	if c == nil {
		return ElementShadow
	}
	best, bestVal := StatSTR, c.Stats.Str
	for _, kv := range []struct {
		k StatKey
		v int
	}{{StatAGI, c.Stats.Agi}, {StatSTA, c.Stats.Sta}, {StatINT, c.Stats.Int}} {
		if kv.v > bestVal {
			best, bestVal = kv.k, kv.v
		}
	}
	return statElementAffinity[best]
}

func OppositeElement(e Element) Element {
	if o, ok := elementOpposites[e]; ok {
		return o
	}
	return ElementShadow
}

// NewAIRival builds a rival one level ahead of the creature that counters its dominant element.
func NewAIRival(c *Creature) Monster {
	stats := Flat(1)
	level := 1
	if c != nil {
		stats = c.Stats
		level = c.Level
	}
	playerElement := DominantElement(c)
	rivalElement := OppositeElement(playerElement)
	rivalLevel := max(2, level+1)
	total := float64(stats.Total())
	lvl := float64(rivalLevel)

	return Monster{
		ID:             AIRivalID,
		Name:           "Trainer 9000",
		Level:          rivalLevel,
		Element:        rivalElement,
		Health:         roundHalfUp(float64(stats.Sta+rivalLevel)*22 + total*1.6),
		Attack:         roundHalfUp(float64(stats.Str)*1.4 + float64(stats.Agi)*1.1 + lvl*2.5),
		Defense:        roundHalfUp(float64(stats.Sta)*0.9 + float64(stats.Int)*1.2 + lvl*1.5),
		RecommendedStr: max(stats.Str+2, roundHalfUp(lvl*0.8)+5),
		Description: fmt.Sprintf("An adaptive construct that inverts your %s style into %s counters. Always arrives one step ahead.",
			strings.ToLower(string(playerElement)), strings.ToLower(string(rivalElement))),
		XPReward:     max(60, rivalLevel*12),
		FeaturedLoot: "Mirror Core",
		Icon:         "🤖",
	}
}

// Roster is the rival followed by the static bestiary.
func Roster(c *Creature) []Monster {
	return append([]Monster{NewAIRival(c)}, staticMonsters...)
}

// FindMonster looks a monster up in the creature's roster.
func FindMonster(c *Creature, id string) (Monster, error) {
	id = strings.TrimSpace(strings.ToLower(id))
	for _, m := range Roster(c) {
		if m.ID == id {
			return m, nil
		}
	}
	return Monster{}, fmt.Errorf("%w: %q", ErrUnknownMonster, id)
}

// AvailableMonsters offers the three monsters closest in level, within the matchmaking window.
func AvailableMonsters(c *Creature) []Monster {
	roster := Roster(c)
	if c == nil {
		return roster[:3]
	}
	var pool []Monster
	for _, m := range roster {
		if absInt(m.Level-c.Level) <= MatchmakingLevelWindow {
			pool = append(pool, m)
		}
	}
	if len(pool) == 0 {
		pool = roster
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return absInt(pool[i].Level-c.Level) < absInt(pool[j].Level-c.Level)
	})
	if len(pool) > 3 {
		pool = pool[:3]
	}
	return pool
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

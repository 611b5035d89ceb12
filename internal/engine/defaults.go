package engine

const (
	DefaultXPToNext = 100
	DefaultEnergy   = 30
	DefaultImageURL = "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=300&h=300&fit=crop"
)

func defaultBag() []BagItem {
	return []BagItem{
		{ID: ItemSmallPotion, Name: "Small Potion", Description: "Restores 30 HP during a battle.", Icon: "🧪"},
		{ID: ItemSparkCharm, Name: "Spark Charm", Description: "Reduces lightning damage for one fight.", Icon: "⚡"},
		{ID: ItemSnack, Name: "Protein Snack", Description: "Feed before battle to gain stamina.", Icon: "🍖"},
	}
}

// DefaultCreature is the freshly hatched creature used when nothing is stored.
func DefaultCreature() Creature {
	return Creature{
		Name:           "",
		Level:          1,
		EvolutionStage: 1,
		XP:             0,
		XPToNext:       DefaultXPToNext,
		ImageURL:       DefaultImageURL,
		Stats:          Flat(1),
		Bag:            defaultBag(),
	}
}

func DefaultPlayerStats() PlayerStats {
	return PlayerStats{Energy: DefaultEnergy, XP: 0}
}

// NormalizeCreature repairs partially stored or hand-edited creature data.
func NormalizeCreature(c Creature) Creature {
	out := c.Clone()
	if out.Level < 1 {
		out.Level = 1
	}
	if out.EvolutionStage < 1 {
		out.EvolutionStage = 1
	}
	if out.XP < 0 {
		out.XP = 0
	}
	if out.XPToNext <= 0 {
		out.XPToNext = DefaultXPToNext
	}
	out.Stats = nonNegative(out.Stats)
	if out.Bag == nil {
		out.Bag = []BagItem{}
	}
	return out
}

package engine

import (
	"fmt"
	"log/slog"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

type Combatant string

const (
	AttackerCreature Combatant = "creature"
	AttackerMonster  Combatant = "monster"
)

// Combat tuning.
const (
	DefaultMaxRounds = 6

	FedStaBonus         = 2
	SnackStaBonus       = 1
	SnackAttackMult     = 1.05
	CharmDefenseBonus   = 5
	SparkDefenseBonus   = 3
	SparkMitigation     = 0.85
	PotionThreshold     = 0.4
	PotionHealToggle    = 0.3
	PotionHealBag       = 0.35
	MinCreatureDamage   = 8
	MinMonsterDamage    = 6
	MinCoopStrikeDamage = 8
	CoopStrikeRate      = 0.4
)

type BattleEvent struct {
	Round      int       `json:"round"`
	Attacker   Combatant `json:"attacker"`
	Damage     int       `json:"damage"`
	Message    string    `json:"message"`
	CreatureHP int       `json:"creatureHP"`
	MonsterHP  int       `json:"monsterHP"`
}

type BattleOutcome struct {
	DidWin            bool          `json:"didWin"`
	Log               []string      `json:"log"`
	Events            []BattleEvent `json:"events"`
	InitialCreatureHP int           `json:"initialCreatureHP"`
	InitialMonsterHP  int           `json:"initialMonsterHP"`
}

// Rounds is the number of rounds actually fought.
func (o BattleOutcome) Rounds() int {
	if len(o.Events) == 0 {
		return 0
	}
	return o.Events[len(o.Events)-1].Round
}

// FinalHP returns both sides' HP after the last event, or the starting values if nothing happened.
func (o BattleOutcome) FinalHP() (creatureHP, monsterHP int) {
	if len(o.Events) == 0 {
		return o.InitialCreatureHP, o.InitialMonsterHP
	}
	last := o.Events[len(o.Events)-1]
	return last.CreatureHP, last.MonsterHP
}

func (o BattleOutcome) LogValue() slog.Value {
	c, m := o.FinalHP()
	return slog.GroupValue(
		slog.Bool("did_win", o.DidWin),
		slog.Int("rounds", o.Rounds()),
		slog.Int("events", len(o.Events)),
		slog.Int("creature_hp", c),
		slog.Int("monster_hp", m),
	)
}

// Modifiers are the combat bonuses derived from preparation toggles and bag items.
type Modifiers struct {
	StaBonus         int
	DefenseBonus     int
	AttackMultiplier float64
	PotionAvailable  bool
	PotionFromBag    bool
	SparkMitigation  bool
	CoopStrike       int
}

// DeriveModifiers folds toggles and, when equipment is enabled, bag items into combat bonuses.
// Toggle and item bonuses stack additively.
func DeriveModifiers(c *Creature, m Monster, prep Preparation, equipment bool) Modifiers {
	snack := equipment && c.HasItem(ItemSnack)
	spark := equipment && c.HasItem(ItemSparkCharm) && m.Element == ElementLightning
	bagPotion := equipment && c.HasItem(ItemSmallPotion)

	mod := Modifiers{AttackMultiplier: 1}
	if prep.Fed {
		mod.StaBonus += FedStaBonus
	}
	if snack {
		mod.StaBonus += SnackStaBonus
		mod.AttackMultiplier = SnackAttackMult
	}
	if prep.Charm {
		mod.DefenseBonus += CharmDefenseBonus
	}
	if spark {
		mod.DefenseBonus += SparkDefenseBonus
		mod.SparkMitigation = true
	}
	mod.PotionAvailable = prep.Potion || bagPotion
	mod.PotionFromBag = bagPotion
	if prep.Coop && c != nil {
		mod.CoopStrike = max(MinCoopStrikeDamage, roundHalfUp(float64(c.Stats.Str+c.Stats.Agi)*CoopStrikeRate))
	}
	return mod
}

// CreatureStartingHP is (STA + bonus) * 20 + level * 10 + 60.
func CreatureStartingHP(c Creature, staBonus int) int {
	return (c.Stats.Sta+staBonus)*20 + c.Level*10 + 60
}

// CreatureAttack is STR*1.4 + AGI*0.8 + INT*0.5 + level*1.8, before multipliers.
func CreatureAttack(c Creature) float64 {
	return float64(c.Stats.Str)*1.4 + float64(c.Stats.Agi)*0.8 + float64(c.Stats.Int)*0.5 + float64(c.Level)*1.8
}

// CreatureDefense is STA*0.7 + INT*0.3 + bonus.
func CreatureDefense(c Creature, defenseBonus int) float64 {
	return float64(c.Stats.Sta)*0.7 + float64(c.Stats.Int)*0.3 + float64(defenseBonus)
}

type SimulatorOptions struct {
	// EquipmentEffects turns bag item bonuses on. Screens that ignore the bag pass false.
	EquipmentEffects bool
	// MaxRounds caps the round loop; zero means DefaultMaxRounds.
	MaxRounds int
}

// Simulator is the single battle engine. It keeps no state between calls except the random source.
type Simulator struct {
	rng  RandomSource
	opts SimulatorOptions
}

func NewSimulator(rng RandomSource, opts SimulatorOptions) *Simulator {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	return &Simulator{rng: rng, opts: opts}
}

func (s *Simulator) Options() SimulatorOptions { return s.opts }

// Simulate runs the round loop. A nil creature yields a lost outcome with no events and zero HP.
func (s *Simulator) Simulate(c *Creature, m Monster, prep Preparation) BattleOutcome {
	if c == nil {
		return BattleOutcome{
			DidWin: false,
			Log:    []string{"Missing creature data."},
			Events: []BattleEvent{},
		}
	}

	name := c.DisplayName()
	mod := DeriveModifiers(c, m, prep, s.opts.EquipmentEffects)

	initialCreatureHP := CreatureStartingHP(*c, mod.StaBonus)
	initialMonsterHP := m.Health
	creatureHP := initialCreatureHP
	monsterHP := initialMonsterHP

	attack := CreatureAttack(*c) * mod.AttackMultiplier
	defense := CreatureDefense(*c, mod.DefenseBonus)
	monsterAttack := float64(m.Attack)
	monsterDefense := float64(m.Defense)

	potionAvailable := mod.PotionAvailable
	healRate := PotionHealToggle
	if mod.PotionFromBag {
		healRate = PotionHealBag
	}
	potionHeal := roundHalfUp(float64(initialCreatureHP) * healRate)

	var (
		log    []string
		events []BattleEvent
	)
	record := func(round int, who Combatant, dmg int, msg string) {
		log = append(log, msg)
		events = append(events, BattleEvent{
			Round:      round,
			Attacker:   who,
			Damage:     dmg,
			Message:    msg,
			CreatureHP: max(creatureHP, 0),
			MonsterHP:  max(monsterHP, 0),
		})
	}

	for round := 1; round <= s.opts.MaxRounds && creatureHP > 0 && monsterHP > 0; round++ {
		hit := max(MinCreatureDamage, roundHalfUp(attack*(0.85+s.rng.Float64()*0.4)-monsterDefense))
		monsterHP -= hit
		record(round, AttackerCreature, hit, fmt.Sprintf("Round %d: %s hits %s for %d dmg.", round, name, m.Name, hit))
		if monsterHP <= 0 {
			monsterHP = 0
			break
		}

		if mod.CoopStrike > 0 {
			monsterHP -= mod.CoopStrike
			record(round, AttackerCreature, mod.CoopStrike, fmt.Sprintf("Round %d: Ally strike deals %d dmg.", round, mod.CoopStrike))
			if monsterHP <= 0 {
				monsterHP = 0
				break
			}
		}

		counter := max(MinMonsterDamage, roundHalfUp(monsterAttack*(0.9+s.rng.Float64()*0.3)-defense))
		note := ""
		if mod.SparkMitigation {
			if mitigated := roundHalfUp(float64(counter) * SparkMitigation); mitigated < counter {
				counter = mitigated
				note = " Spark charm absorbs part of the strike."
			}
		}
		creatureHP -= counter
		record(round, AttackerMonster, counter, fmt.Sprintf("Round %d: %s counters for %d dmg.%s", round, m.Name, counter, note))

		if potionAvailable && creatureHP > 0 && float64(creatureHP) <= float64(initialCreatureHP)*PotionThreshold {
			potionAvailable = false
			creatureHP = min(creatureHP+potionHeal, initialCreatureHP)
			record(round, AttackerCreature, 0, fmt.Sprintf("Healing potion restores %d HP!", potionHeal))
		}
	}

	didWin := monsterHP <= 0 && creatureHP > 0
	if didWin {
		log = append(log, fmt.Sprintf("%s prevails!", name))
	} else {
		log = append(log, fmt.Sprintf("%s overwhelms %s. Retreat and regroup.", m.Name, name))
	}

	return BattleOutcome{
		DidWin:            didWin,
		Log:               log,
		Events:            events,
		InitialCreatureHP: initialCreatureHP,
		InitialMonsterHP:  initialMonsterHP,
	}
}

package storage

// Keys persisted by the app. Absence of a key means "use defaults".
const (
	KeyCreature         = "creature"
	KeyPlayerStats      = "playerStats"
	KeyWorkoutLog       = "workoutLog"
	KeyPersonalRecords  = "personalRecords"
	KeyBattleLock       = "battleLock"
	KeyWorkoutTemplates = "workoutTemplates"
	KeyBattleHistory    = "battleHistory"
)

// AllKeys lists every key owned by the app, used by reset.
var AllKeys = []string{
	KeyCreature,
	KeyPlayerStats,
	KeyWorkoutLog,
	KeyPersonalRecords,
	KeyBattleLock,
	KeyWorkoutTemplates,
	KeyBattleHistory,
}

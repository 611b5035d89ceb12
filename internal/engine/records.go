package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RecordMetric string

const (
	MetricMaxWeight   RecordMetric = "maxWeight"
	MetricTotalVolume RecordMetric = "totalVolume"
)

// PRXPBonus is the fixed bonus carried by every new personal best.
const PRXPBonus = 35

type PersonalRecord struct {
	ID          string    `json:"id"`
	Exercise    string    `json:"exercise"`
	MaxWeight   float64   `json:"maxWeight"`
	TotalVolume float64   `json:"totalVolume"`
	UpdatedAt   time.Time `json:"updatedAt"`
	WorkoutID   string    `json:"workoutId"`
}

// PersonalRecordMap is keyed by NormalizeExerciseName.
type PersonalRecordMap map[string]PersonalRecord

type PRAchievement struct {
	Exercise      string       `json:"exercise"`
	Metric        RecordMetric `json:"metric"`
	PreviousValue *float64     `json:"previousValue,omitempty"`
	NewValue      float64      `json:"newValue"`
	XPBonus       int          `json:"xpBonus"`
	Date          time.Time    `json:"date"`
}

// NormalizeExerciseName is the record key: trimmed and lowercased.
func NormalizeExerciseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Sorted returns the records ordered by exercise key.
func (m PersonalRecordMap) Sorted() []PersonalRecord {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]PersonalRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// EvaluatePersonalRecords compares one session against the ledger. Each field is ratcheted
// independently, but at most one achievement is produced per exercise and a max-weight
// improvement takes priority over a volume improvement.
func EvaluatePersonalRecords(exercises []Exercise, existing PersonalRecordMap, workoutID string, date time.Time) (PersonalRecordMap, []PRAchievement) {
	updated := make(PersonalRecordMap, len(existing))
	for k, v := range existing {
		updated[k] = v
	}

	var achievements []PRAchievement
	for _, ex := range exercises {
		name := strings.TrimSpace(ex.Name)
		if name == "" {
			continue
		}
		key := NormalizeExerciseName(name)

		var sessionMax, sessionVolume float64
		for _, s := range ex.Sets {
			if s.Weight > sessionMax {
				sessionMax = s.Weight
			}
			sessionVolume += s.Weight * float64(s.Reps)
		}

		prev, had := updated[key]
		rec := prev
		if !had {
			rec = PersonalRecord{ID: uuid.NewString(), Exercise: name}
		}

		weightUp := sessionMax > prev.MaxWeight
		volumeUp := sessionVolume > prev.TotalVolume
		if !weightUp && !volumeUp {
			continue
		}

		if weightUp {
			rec.MaxWeight = sessionMax
		}
		if volumeUp {
			rec.TotalVolume = sessionVolume
		}
		rec.Exercise = name
		rec.UpdatedAt = date
		rec.WorkoutID = workoutID
		updated[key] = rec

		a := PRAchievement{Exercise: name, XPBonus: PRXPBonus, Date: date}
		if weightUp {
			a.Metric = MetricMaxWeight
			a.NewValue = sessionMax
			if had {
				a.PreviousValue = ptr(prev.MaxWeight)
			}
		} else {
			a.Metric = MetricTotalVolume
			a.NewValue = sessionVolume
			if had {
				a.PreviousValue = ptr(prev.TotalVolume)
			}
		}
		achievements = append(achievements, a)
	}
	return updated, achievements
}

func ptr[T any](v T) *T { return &v }

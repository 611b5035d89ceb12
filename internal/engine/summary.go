package engine

import (
	"context"

	"gonum.org/v1/gonum/stat"
)

type WorkoutSummary struct {
	Count        int
	TotalVolume  float64
	MeanVolume   float64
	StdDevVolume float64
	TotalXP      int
	TotalSets    int
	PRCount      int
}

// SummarizeWorkouts aggregates a workout log. StdDevVolume is zero for fewer than two workouts.
func SummarizeWorkouts(workouts []Workout) WorkoutSummary {
	sum := WorkoutSummary{Count: len(workouts)}
	if len(workouts) == 0 {
		return sum
	}
	volumes := make([]float64, 0, len(workouts))
	for _, w := range workouts {
		m := CalculateWorkoutMetrics(w)
		volumes = append(volumes, m.TotalVolume)
		sum.TotalVolume += m.TotalVolume
		sum.TotalSets += m.TotalSets
		sum.TotalXP += w.XPEarned
		sum.PRCount += len(w.PRAchievements)
	}
	sum.MeanVolume = stat.Mean(volumes, nil)
	if len(volumes) > 1 {
		sum.StdDevVolume = stat.StdDev(volumes, nil)
	}
	return sum
}

func (s *Service) WorkoutSummary(ctx context.Context) (WorkoutSummary, error) {
	ws, err := s.Workouts(ctx)
	if err != nil {
		return WorkoutSummary{}, err
	}
	return SummarizeWorkouts(ws), nil
}

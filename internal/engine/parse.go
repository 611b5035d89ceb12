package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseExercise parses "Name:REPSxWEIGHT,REPSxWEIGHT". A set without "x" is bodyweight reps.
// Examples: "Bench Press:5x100,5x102.5", "Pull-up:10,8,8".
func ParseExercise(input string) (Exercise, error) {
	name, rest, ok := strings.Cut(input, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Exercise{}, fmt.Errorf("%w: %q (want Name:5x100,5x100)", ErrBadExerciseFormat, input)
	}
	ex := Exercise{Name: name}
	for _, raw := range strings.Split(rest, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		s, err := parseSet(raw)
		if err != nil {
			return Exercise{}, fmt.Errorf("%s: %w", name, err)
		}
		ex.Sets = append(ex.Sets, s)
	}
	if len(ex.Sets) == 0 {
		return Exercise{}, fmt.Errorf("%w: %q has no sets", ErrBadExerciseFormat, name)
	}
	return ex, nil
}

func parseSet(raw string) (Set, error) {
	repsStr, weightStr, hasWeight := strings.Cut(strings.ToLower(raw), "x")
	reps, err := strconv.Atoi(strings.TrimSpace(repsStr))
	if err != nil || reps <= 0 {
		return Set{}, fmt.Errorf("%w: bad reps in %q", ErrBadExerciseFormat, raw)
	}
	s := Set{Reps: reps}
	if hasWeight {
		w, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(weightStr), "kg"), 64)
		if err != nil || !validAmount(w, MaxSetWeight) {
			return Set{}, fmt.Errorf("%w: bad weight in %q", ErrBadExerciseFormat, raw)
		}
		s.Weight = w
	}
	return s, nil
}

// ParseCardio parses "Name:30m,5km" with further segments separated by ";".
// Either value may be omitted: "Bike:45m", "Run:5km;3km".
func ParseCardio(input string) (Exercise, error) {
	name, rest, ok := strings.Cut(input, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Exercise{}, fmt.Errorf("%w: %q (want Name:30m,5km)", ErrBadExerciseFormat, input)
	}
	ex := Exercise{Name: name}
	for _, seg := range strings.Split(rest, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		var c CardioSegment
		for _, part := range strings.Split(seg, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			var err error
			switch {
			case strings.HasSuffix(part, "km"):
				c.Distance, err = parseAmount(strings.TrimSuffix(part, "km"), MaxCardioDistance)
			case strings.HasSuffix(part, "min"):
				c.Duration, err = parseAmount(strings.TrimSuffix(part, "min"), MaxCardioDuration)
			case strings.HasSuffix(part, "m"):
				c.Duration, err = parseAmount(strings.TrimSuffix(part, "m"), MaxCardioDuration)
			default:
				err = fmt.Errorf("missing unit")
			}
			if err != nil {
				return Exercise{}, fmt.Errorf("%w: %q in %s: %v", ErrBadExerciseFormat, part, name, err)
			}
		}
		ex.Cardio = append(ex.Cardio, c)
	}
	if len(ex.Cardio) == 0 {
		return Exercise{}, fmt.Errorf("%w: %q has no segments", ErrBadExerciseFormat, name)
	}
	return ex, nil
}

func parseAmount(raw string, ceiling float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if !validAmount(v, ceiling) {
		return 0, fmt.Errorf("out of range 0..%g", ceiling)
	}
	return v, nil
}

// ParsePreparation reads a comma list such as "fed,coop".
func ParsePreparation(input string) (Preparation, error) {
	var p Preparation
	for _, raw := range strings.Split(input, ",") {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "":
		case "fed":
			p.Fed = true
		case "charm":
			p.Charm = true
		case "potion":
			p.Potion = true
		case "coop":
			p.Coop = true
		default:
			return Preparation{}, fmt.Errorf("unknown preparation %q (want fed, charm, potion, coop)", raw)
		}
	}
	return p, nil
}

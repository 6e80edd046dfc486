package market

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTimeframe = errors.New("unknown timeframe")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrUnknownOutcome   = errors.New("unknown outcome")
	ErrUnknownEmotion   = errors.New("unknown emotion")
)

type Timeframe string

const (
	M1 Timeframe = "1m"
	M5 Timeframe = "5m"
)

var Timeframes = []Timeframe{M1, M5}

type Direction string

const (
	Up   Direction = "↑"
	Down Direction = "↓"
)

var Directions = []Direction{Up, Down}

type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Tie  Outcome = "tie"
)

var Outcomes = []Outcome{Win, Loss, Tie}

// Decisive reports whether the outcome counts toward the win rate.
func (o Outcome) Decisive() bool {
	return o == Win || o == Loss
}

type Emotion string

var Emotions = []Emotion{
	"Neutral",
	"Confiado",
	"Enfocado",
	"Ansioso",
	"Impulsivo",
	"Cansado",
	"Frustrado",
}

func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Timeframes {
		if v == tf {
			return tf, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, s)
}

// ParseDirection accepts the arrow glyphs as well as up/down and call/put.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Up), "up", "call", "u":
		return Up, nil
	case string(Down), "down", "put", "d":
		return Down, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Outcomes {
		if v == o {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
}

// ParseEmotion matches case-insensitively and returns the catalog spelling.
func ParseEmotion(s string) (Emotion, error) {
	s = strings.TrimSpace(s)
	for _, v := range Emotions {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, s)
}

// Options helpers for select widgets.

func Strings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

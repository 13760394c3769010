// Package textgrid reads and writes Praat TextGrid files in the text
// formats and edits their tiers.
package textgrid

import (
	"errors"
	"sort"
)

const (
	IntervalTier = "IntervalTier"
	TextTier     = "TextTier"
)

var ErrTierExists = errors.New("tier already exists")

type Interval struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	Text string  `json:"text"`
}

type Point struct {
	Time float64 `json:"time"`
	Mark string  `json:"mark"`
}

// Tier is either an interval tier or a point (text) tier; Class decides
// which of Intervals and Points is used.
type Tier struct {
	Class     string
	Name      string
	XMin      float64
	XMax      float64
	Intervals []Interval
	Points    []Point
}

type TextGrid struct {
	XMin  float64
	XMax  float64
	Tiers []Tier
}

// NewIntervalTier builds an interval tier over [xmin, xmax].
func NewIntervalTier(name string, xmin, xmax float64, entries []Interval) Tier {
	return Tier{Class: IntervalTier, Name: name, XMin: xmin, XMax: xmax, Intervals: entries}
}

func (tg *TextGrid) Tier(name string) (*Tier, bool) {
	for i := range tg.Tiers {
		if tg.Tiers[i].Name == name {
			return &tg.Tiers[i], true
		}
	}
	return nil, false
}

// AddTier appends t, widening the grid when t reaches past it.
func (tg *TextGrid) AddTier(t Tier) error {
	if _, ok := tg.Tier(t.Name); ok {
		return ErrTierExists
	}
	if t.XMin < tg.XMin {
		tg.XMin = t.XMin
	}
	if t.XMax > tg.XMax {
		tg.XMax = t.XMax
	}
	tg.Tiers = append(tg.Tiers, t)
	return nil
}

func (tg *TextGrid) RemoveTier(name string) bool {
	for i := range tg.Tiers {
		if tg.Tiers[i].Name == name {
			tg.Tiers = append(tg.Tiers[:i], tg.Tiers[i+1:]...)
			return true
		}
	}
	return false
}

// FillGaps returns a copy of an interval tier whose intervals cover
// [XMin, XMax] without holes; holes become empty intervals.
func (t Tier) FillGaps() Tier {
	if t.Class != IntervalTier {
		return t
	}
	src := append([]Interval(nil), t.Intervals...)
	sort.SliceStable(src, func(i, j int) bool { return src[i].XMin < src[j].XMin })

	out := make([]Interval, 0, len(src)+1)
	cursor := t.XMin
	for _, iv := range src {
		if iv.XMin > cursor {
			out = append(out, Interval{XMin: cursor, XMax: iv.XMin})
		}
		out = append(out, iv)
		cursor = iv.XMax
	}
	if cursor < t.XMax {
		out = append(out, Interval{XMin: cursor, XMax: t.XMax})
	}
	t.Intervals = out
	return t
}

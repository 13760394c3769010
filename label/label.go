package label

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Granularity int

const (
	Phoneme Granularity = iota
	Mora
)

func (g Granularity) String() string {
	if g == Mora {
		return "mora"
	}
	return "phoneme"
}

// Label is the ordered segmentation of one utterance.
type Label struct {
	Segments    []Segment
	Granularity Granularity
}

// ByMora groups phoneme segments into moras. A label that is already
// mora-grouped is returned as is.
func (l *Label) ByMora() *Label {
	if l.Granularity == Mora {
		return l
	}

	moras := make([]Segment, 0, len(l.Segments))
	var cur Segment
	started := false
	for _, seg := range l.Segments {
		switch {
		case !started:
			cur, started = seg, true
		case cur.CanPrecede(seg):
			cur = cur.Merge(seg)
		default:
			moras = append(moras, cur)
			cur = seg
		}
	}
	if started {
		moras = append(moras, cur)
	}
	return &Label{Segments: moras, Granularity: Mora}
}

// Span returns the covered time range.
func (l *Label) Span() (float64, float64) {
	if len(l.Segments) == 0 {
		return 0, 0
	}
	return l.Segments[0].Start, l.Segments[len(l.Segments)-1].End
}

// TextGrid renders the label as a single-tier long-format TextGrid.
func (l *Label) TextGrid() ([]byte, error) {
	if len(l.Segments) == 0 {
		return nil, ErrEmptyInput
	}
	lines := l.headers()
	for i, seg := range l.Segments {
		lines = append(lines, seg.Render(i+1)...)
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func (l *Label) headers() []string {
	xmax := FormatSeconds(l.Segments[len(l.Segments)-1].End)
	return []string{
		`File type = "ooTextFile"`,
		`Object class = "TextGrid"`,
		` `,
		`xmin = 0 `,
		fmt.Sprintf("xmax = %s ", xmax),
		`tiers? <exists> `,
		`size = 1 `,
		`item []: `,
		`    item [1]: `,
		`        class = "IntervalTier" `,
		fmt.Sprintf("        name = \"%s\" ", l.Granularity),
		`        xmin = 0 `,
		fmt.Sprintf("        xmax = %s ", xmax),
		fmt.Sprintf("        intervals: size = %d ", len(l.Segments)),
	}
}

// WriteTextGrid writes the TextGrid to path. Nothing is created when the
// label is empty or rendering fails, and a failed write leaves no partial file.
func (l *Label) WriteTextGrid(path string) error {
	data, err := l.TextGrid()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".labgrid-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

package textgrid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func quote(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }

// EncodeShort writes the short text format. Interval tiers are written
// with their gaps filled.
func (tg *TextGrid) EncodeShort(w io.Writer) error {
	bw := bufio.NewWriter(w)
	lines := []string{
		`File type = "ooTextFile"`,
		`Object class = "TextGrid"`,
		``,
		num(tg.XMin),
		num(tg.XMax),
	}
	if len(tg.Tiers) == 0 {
		lines = append(lines, "<absent>")
	} else {
		lines = append(lines, "<exists>", strconv.Itoa(len(tg.Tiers)))
	}
	for _, l := range lines {
		fmt.Fprintln(bw, l)
	}

	for _, t := range tg.Tiers {
		if t.Class == IntervalTier {
			t = t.FillGaps()
		}
		fmt.Fprintln(bw, quote(t.Class))
		fmt.Fprintln(bw, quote(t.Name))
		fmt.Fprintln(bw, num(t.XMin))
		fmt.Fprintln(bw, num(t.XMax))
		switch t.Class {
		case IntervalTier:
			fmt.Fprintln(bw, len(t.Intervals))
			for _, iv := range t.Intervals {
				fmt.Fprintf(bw, "%s\n%s\n%s\n", num(iv.XMin), num(iv.XMax), quote(iv.Text))
			}
		case TextTier:
			fmt.Fprintln(bw, len(t.Points))
			for _, p := range t.Points {
				fmt.Fprintf(bw, "%s\n%s\n", num(p.Time), quote(p.Mark))
			}
		default:
			return fmt.Errorf("tier %q: unknown class %q", t.Name, t.Class)
		}
	}
	return bw.Flush()
}

// WriteFile encodes tg next to path and renames it into place.
func (tg *TextGrid) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".textgrid-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tg.EncodeShort(tmp); err != nil {
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

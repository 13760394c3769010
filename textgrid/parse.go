package textgrid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrSyntax = errors.New("textgrid syntax error")

type token struct {
	line int
	val  string
}

// tokenize reduces both the long ("key = value") and the short (values
// only) text formats to the same stream of values. Structural lines such as
// "item [1]:" carry no value and are dropped. Strings must fit on one line.
func tokenize(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, `"`):
		case strings.Contains(line, "="):
			line = strings.TrimSpace(line[strings.Index(line, "=")+1:])
		case strings.HasSuffix(line, ":"):
			continue
		case strings.HasPrefix(line, "tiers?"):
			line = strings.TrimSpace(strings.TrimPrefix(line, "tiers?"))
		}
		toks = append(toks, token{line: n, val: line})
	}
	return toks, sc.Err()
}

type reader struct {
	toks []token
	pos  int
}

func (r *reader) next(what string) (token, error) {
	if r.pos >= len(r.toks) {
		return token{}, fmt.Errorf("%w: unexpected end of file reading %s", ErrSyntax, what)
	}
	t := r.toks[r.pos]
	r.pos++
	return t, nil
}

func (r *reader) str(what string) (string, error) {
	t, err := r.next(what)
	if err != nil {
		return "", err
	}
	v := t.val
	if len(v) < 2 || v[0] != '"' || v[len(v)-1] != '"' {
		return "", fmt.Errorf("%w: line %d: %s: want quoted string, got %q", ErrSyntax, t.line, what, v)
	}
	return strings.ReplaceAll(v[1:len(v)-1], `""`, `"`), nil
}

func (r *reader) num(what string) (float64, error) {
	t, err := r.next(what)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(t.val, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s: %v", ErrSyntax, t.line, what, err)
	}
	return f, nil
}

func (r *reader) count(what string) (int, error) {
	t, err := r.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(t.val)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: line %d: %s: bad count %q", ErrSyntax, t.line, what, t.val)
	}
	return n, nil
}

// Parse reads a TextGrid in the long or short text format.
func Parse(in io.Reader) (*TextGrid, error) {
	toks, err := tokenize(in)
	if err != nil {
		return nil, err
	}
	r := &reader{toks: toks}

	if ft, err := r.str("file type"); err != nil {
		return nil, err
	} else if ft != "ooTextFile" && ft != "ooTextFile short" {
		return nil, fmt.Errorf("%w: file type %q", ErrSyntax, ft)
	}
	if oc, err := r.str("object class"); err != nil {
		return nil, err
	} else if oc != "TextGrid" {
		return nil, fmt.Errorf("%w: object class %q", ErrSyntax, oc)
	}

	tg := &TextGrid{}
	if tg.XMin, err = r.num("xmin"); err != nil {
		return nil, err
	}
	if tg.XMax, err = r.num("xmax"); err != nil {
		return nil, err
	}
	flag, err := r.next("tiers flag")
	if err != nil {
		return nil, err
	}
	if flag.val == "<absent>" {
		return tg, nil
	}
	size, err := r.count("tier count")
	if err != nil {
		return nil, err
	}

	for i := 0; i < size; i++ {
		t, err := r.tier()
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", i+1, err)
		}
		tg.Tiers = append(tg.Tiers, t)
	}
	return tg, nil
}

func (r *reader) tier() (Tier, error) {
	var (
		t   Tier
		err error
	)
	if t.Class, err = r.str("class"); err != nil {
		return t, err
	}
	if t.Name, err = r.str("name"); err != nil {
		return t, err
	}
	if t.XMin, err = r.num("xmin"); err != nil {
		return t, err
	}
	if t.XMax, err = r.num("xmax"); err != nil {
		return t, err
	}
	n, err := r.count("size")
	if err != nil {
		return t, err
	}

	switch t.Class {
	case IntervalTier:
		t.Intervals = make([]Interval, 0, n)
		for j := 0; j < n; j++ {
			var iv Interval
			if iv.XMin, err = r.num("interval xmin"); err != nil {
				return t, err
			}
			if iv.XMax, err = r.num("interval xmax"); err != nil {
				return t, err
			}
			if iv.Text, err = r.str("interval text"); err != nil {
				return t, err
			}
			t.Intervals = append(t.Intervals, iv)
		}
	case TextTier:
		t.Points = make([]Point, 0, n)
		for j := 0; j < n; j++ {
			var p Point
			if p.Time, err = r.num("point time"); err != nil {
				return t, err
			}
			if p.Mark, err = r.str("point mark"); err != nil {
				return t, err
			}
			t.Points = append(t.Points, p)
		}
	default:
		return t, fmt.Errorf("%w: unknown tier class %q", ErrSyntax, t.Class)
	}
	return t, nil
}

func ReadFile(path string) (*TextGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tg, nil
}

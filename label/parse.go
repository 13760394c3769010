package label

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	Ext         = ".lab"
	TextGridExt = ".TextGrid"
)

var (
	ErrWrongFileKind = errors.New("not a .lab file")
	ErrEmptyInput    = errors.New("no label data found")
	ErrMalformedLine = errors.New("malformed label line")
)

// MalformedLineError points at the first line that is not "start end label".
type MalformedLineError struct {
	Line int
	Text string
	Err  error
}

func (e *MalformedLineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("line %d %q: expected 3 fields", e.Line, e.Text)
}

func (e *MalformedLineError) Is(target error) bool { return target == ErrMalformedLine }

func (e *MalformedLineError) Unwrap() error { return e.Err }

// ReadFile parses a .lab file. Files with another extension are rejected
// without being opened.
func ReadFile(path string) (*Label, error) {
	if !strings.HasSuffix(path, Ext) {
		return nil, fmt.Errorf("%s: %w", path, ErrWrongFileKind)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

var errNotFinite = errors.New("time is not a finite number")

const maxLine = 1024 * 1024

// Parse reads "start end label" lines. Blank lines are skipped.
func Parse(r io.Reader) (*Label, error) {
	var segs []Segment
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, &MalformedLineError{Line: n, Text: line}
		}
		start, err := parseTime(fields[0])
		if err != nil {
			return nil, &MalformedLineError{Line: n, Text: line, Err: err}
		}
		end, err := parseTime(fields[1])
		if err != nil {
			return nil, &MalformedLineError{Line: n, Text: line, Err: err}
		}
		segs = append(segs, Segment{Start: start, End: end, Label: fields[2]})
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &MalformedLineError{Line: n + 1, Err: err}
		}
		return nil, err
	}
	return &Label{Segments: segs, Granularity: Phoneme}, nil
}

func parseTime(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

package textgrid

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longGrid = `File type = "ooTextFile"
Object class = "TextGrid"

xmin = 0
xmax = 1.25
tiers? <exists>
size = 2
item []:
    item [1]:
        class = "IntervalTier"
        name = "words"
        xmin = 0
        xmax = 1.25
        intervals: size = 3
        intervals [1]:
            xmin = 0.0
            xmax = 0.4
            text = ""
        intervals [2]:
            xmin = 0.4
            xmax = 0.9
            text = "say ""green"" = go"
        intervals [3]:
            xmin = 0.9
            xmax = 1.25
            text = "green"
    item [2]:
        class = "TextTier"
        name = "events"
        xmin = 0
        xmax = 1.25
        points: size = 1
        points [1]:
            number = 0.5
            mark = "click" `

func TestParseLong(t *testing.T) {
	tg, err := Parse(strings.NewReader(longGrid))
	require.NoError(t, err)

	assert.Equal(t, 0.0, tg.XMin)
	assert.Equal(t, 1.25, tg.XMax)
	require.Len(t, tg.Tiers, 2)

	words := tg.Tiers[0]
	assert.Equal(t, IntervalTier, words.Class)
	assert.Equal(t, "words", words.Name)
	assert.Equal(t, []Interval{
		{XMin: 0, XMax: 0.4, Text: ""},
		{XMin: 0.4, XMax: 0.9, Text: `say "green" = go`},
		{XMin: 0.9, XMax: 1.25, Text: "green"},
	}, words.Intervals)

	events := tg.Tiers[1]
	assert.Equal(t, TextTier, events.Class)
	assert.Equal(t, []Point{{Time: 0.5, Mark: "click"}}, events.Points)
}

func TestShortRoundTrip(t *testing.T) {
	tg, err := Parse(strings.NewReader(longGrid))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tg.EncodeShort(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n0\n1.25\n<exists>\n2\n\"IntervalTier\"\n\"words\"\n"))
	assert.Contains(t, buf.String(), "\n\"say \"\"green\"\" = go\"\n")

	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, tg, again)
}

func TestParseAbsentTiers(t *testing.T) {
	tg, err := Parse(strings.NewReader("File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n0\n2.5\n<absent>\n"))
	require.NoError(t, err)
	assert.Equal(t, 2.5, tg.XMax)
	assert.Empty(t, tg.Tiers)
}

func TestParseShortHeader(t *testing.T) {
	in := "File type = \"ooTextFile short\"\n\"TextGrid\"\n\n0\n1\n<exists>\n1\n\"IntervalTier\"\n\"words\"\n0\n1\n1\n0\n1\n\"go\"\n"
	tg, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tg.Tiers, 1)
	assert.Equal(t, []Interval{{XMin: 0, XMax: 1, Text: "go"}}, tg.Tiers[0].Intervals)

	_, err = Parse(strings.NewReader("File type = \"ooBinaryFile\"\n\"TextGrid\"\n0\n1\n<absent>\n"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"not a grid":      "File type = \"ooTextFile\"\nObject class = \"Sound\"\n",
		"truncated":       "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n0\n1\n<exists>\n1\n\"IntervalTier\"\n",
		"bad number":      "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n0\nend\n",
		"unknown class":   "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n0\n1\n<exists>\n1\n\"Bogus\"\n\"x\"\n0\n1\n0\n",
		"unquoted string": "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n0\n1\n<exists>\n1\nIntervalTier\n",
	}
	for name, in := range cases {
		_, err := Parse(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrSyntax, name)
	}
}

func TestFillGaps(t *testing.T) {
	tier := NewIntervalTier("TargetWord", 0, 3, []Interval{
		{XMin: 2, XMax: 2.5, Text: "go"},
		{XMin: 0.5, XMax: 1, Text: "green"},
	})

	filled := tier.FillGaps()
	assert.Equal(t, []Interval{
		{XMin: 0, XMax: 0.5},
		{XMin: 0.5, XMax: 1, Text: "green"},
		{XMin: 1, XMax: 2},
		{XMin: 2, XMax: 2.5, Text: "go"},
		{XMin: 2.5, XMax: 3},
	}, filled.Intervals)
	assert.Len(t, tier.Intervals, 2, "FillGaps must not touch the receiver")
}

func TestAddRemoveTier(t *testing.T) {
	tg := &TextGrid{XMin: 0, XMax: 1}
	require.NoError(t, tg.AddTier(NewIntervalTier("phoneme", 0, 1, nil)))
	require.NoError(t, tg.AddTier(NewIntervalTier("TargetWord", 0, 1.5, []Interval{{XMin: 0, XMax: 1.5}})))
	assert.Equal(t, 1.5, tg.XMax)

	assert.ErrorIs(t, tg.AddTier(NewIntervalTier("phoneme", 0, 1, nil)), ErrTierExists)

	tier, ok := tg.Tier("TargetWord")
	require.True(t, ok)
	assert.Equal(t, "TargetWord", tier.Name)

	assert.True(t, tg.RemoveTier("phoneme"))
	assert.False(t, tg.RemoveTier("phoneme"))
	require.Len(t, tg.Tiers, 1)
	assert.Equal(t, "TargetWord", tg.Tiers[0].Name)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.TextGrid")
	tg := &TextGrid{XMin: 0, XMax: 2}
	require.NoError(t, tg.AddTier(NewIntervalTier("TargetWord", 0, 2, []Interval{{XMin: 0.5, XMax: 1, Text: "time"}})))

	require.NoError(t, tg.WriteFile(path))

	back, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, back.Tiers, 1)
	assert.Equal(t, []Interval{
		{XMin: 0, XMax: 0.5},
		{XMin: 0.5, XMax: 1, Text: "time"},
		{XMin: 1, XMax: 2},
	}, back.Tiers[0].Intervals)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

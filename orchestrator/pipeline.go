package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	cfg "github.com/maastricht-university/labgrid/config"
	"github.com/maastricht-university/labgrid/label"
	"github.com/maastricht-university/labgrid/textgrid"
)

var ErrNotTextGrid = errors.New("not a .TextGrid file")

type Pipeline struct {
	cfg *cfg.Root
	log logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{cfg: c, log: log}
}

// step converts one input file and returns what it wrote.
type step func(in string) (FileResult, error)

// Convert turns every .lab file of the input folder into a TextGrid,
// grouped by mora when the config asks for it.
func (p *Pipeline) Convert(ctx context.Context) (*Report, error) {
	return p.run(ctx, "convert", func(in string) (FileResult, error) {
		l, err := label.ReadFile(in)
		if err != nil {
			return FileResult{}, err
		}
		if p.cfg.Convert.ByMora {
			l = l.ByMora()
		}
		out := p.outPath(in, label.Ext, label.TextGridExt)
		if err := l.WriteTextGrid(out); err != nil {
			return FileResult{}, err
		}
		return FileResult{Input: in, Output: out, Summary: summarize(l)}, nil
	})
}

// AddTier adds an empty interval tier spanning each grid.
func (p *Pipeline) AddTier(ctx context.Context) (*Report, error) {
	name := p.cfg.Tiers.Name
	return p.run(ctx, "tier-add", p.editGrid(func(tg *textgrid.TextGrid) error {
		tier := textgrid.NewIntervalTier(name, tg.XMin, tg.XMax, []textgrid.Interval{{XMin: tg.XMin, XMax: tg.XMax}})
		if err := tg.AddTier(tier); err != nil {
			return fmt.Errorf("tier %q: %w", name, err)
		}
		return nil
	}))
}

// CopyKeywords copies the intervals of the source tier whose text is a
// keyword into the target tier, replacing any previous target tier.
func (p *Pipeline) CopyKeywords(ctx context.Context) (*Report, error) {
	t := p.cfg.Tiers
	return p.run(ctx, "tier-keywords", p.editGrid(func(tg *textgrid.TextGrid) error {
		src, ok := tg.Tier(t.Source)
		if !ok || src.Class != textgrid.IntervalTier {
			return fmt.Errorf("%q: %w", t.Source, ErrNoSourceTier)
		}
		hits := matchKeywords(src.Intervals, t.Keywords)
		if len(hits) == 0 {
			return ErrNoKeywords
		}
		tg.RemoveTier(t.Name)
		return tg.AddTier(textgrid.NewIntervalTier(t.Name, tg.XMin, tg.XMax, hits))
	}))
}

func (p *Pipeline) editGrid(edit func(*textgrid.TextGrid) error) step {
	return func(in string) (FileResult, error) {
		if !strings.HasSuffix(in, label.TextGridExt) {
			return FileResult{}, fmt.Errorf("%s: %w", in, ErrNotTextGrid)
		}
		tg, err := textgrid.ReadFile(in)
		if err != nil {
			return FileResult{}, err
		}
		if err := edit(tg); err != nil {
			return FileResult{}, err
		}
		out := p.outPath(in, label.TextGridExt, label.TextGridExt)
		if err := tg.WriteFile(out); err != nil {
			return FileResult{}, err
		}
		return FileResult{Input: in, Output: out}, nil
	}
}

func (p *Pipeline) outPath(in, fromExt, toExt string) string {
	base := strings.TrimSuffix(filepath.Base(in), fromExt)
	return filepath.Join(p.cfg.Paths.Output, base+toExt)
}

func (p *Pipeline) run(ctx context.Context, mode string, fn step) (*Report, error) {
	inDir, outDir := p.cfg.Paths.Input, p.cfg.Paths.Output
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("list input folder: %w", err)
	}

	rep := &Report{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		in := filepath.Join(inDir, e.Name())
		log := p.log.WithField("file", e.Name())

		res, err := fn(in)
		if err != nil {
			rep.Skipped = append(rep.Skipped, Skip{Input: in, Reason: err.Error(), Err: err})
			if errors.Is(err, label.ErrWrongFileKind) || errors.Is(err, ErrNotTextGrid) {
				log.WithError(err).Info("skipping")
			} else {
				log.WithError(err).Warn("skipping")
			}
			continue
		}
		rep.Processed = append(rep.Processed, res)
		log.WithField("output", res.Output).Info("processed")
	}

	if p.cfg.Paths.Report != "" {
		if err := persist(p.cfg.Paths.Report, mode, rep); err != nil {
			return rep, fmt.Errorf("write report: %w", err)
		}
		p.log.WithField("report", p.cfg.Paths.Report).Debug("report written")
	}
	return rep, nil
}

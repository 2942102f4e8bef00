package batch

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/charttrend/internal/analyzer"
	"github.com/ivlev/charttrend/internal/report"
	"github.com/ivlev/charttrend/internal/source"
)

// Loader resolves and decodes an image path
type Loader interface {
	Load(path string) (image.Image, string, error)
}

// Item is the outcome for one input path
type Item struct {
	Path    string
	AbsPath string
	Result  analyzer.Result
	Err     error
}

// Output is the value to serialise for the item: the verdict or an ErrorResult
func (it Item) Output() interface{} {
	if it.Err == nil {
		return it.Result
	}
	switch {
	case errors.Is(it.Err, source.ErrPathNotFound):
		return report.Failure(report.MsgNotFound, it.AbsPath)
	case errors.Is(it.Err, source.ErrDecode):
		return report.Failure(report.MsgDecode, it.AbsPath)
	default:
		return report.Failure(report.MsgAnalysis, it.AbsPath)
	}
}

// Runner analyses images independently, at most Workers at a time
type Runner struct {
	Loader   Loader
	Analyzer analyzer.Analyzer
	Workers  int
	Logger   zerolog.Logger
}

func NewRunner(l Loader, a analyzer.Analyzer, workers int, logger zerolog.Logger) *Runner {
	return &Runner{Loader: l, Analyzer: a, Workers: workers, Logger: logger}
}

// Run returns one item per path, in the order of paths. A failing image never
// stops the others; a cancelled context marks the images not yet started.
func (r *Runner) Run(ctx context.Context, paths []string) []Item {
	items := make([]Item, len(paths))

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i] = Item{Path: p, AbsPath: p, Err: err}
				return nil
			}
			items[i] = r.analyze(p)
			return nil
		})
	}
	_ = g.Wait()

	return items
}

func (r *Runner) analyze(path string) Item {
	start := time.Now()
	img, abs, err := r.Loader.Load(path)
	it := Item{Path: path, AbsPath: abs}
	if err != nil {
		r.Logger.Warn().Err(err).Str("path", abs).Msg("load failed")
		it.Err = err
		return it
	}

	res, err := r.Analyzer.Analyze(img)
	if err != nil {
		r.Logger.Error().Err(err).Str("path", abs).Msg("analysis failed")
		it.Err = errors.Wrap(err, abs)
		return it
	}

	ev := r.Logger.Debug()
	if res.LowSignal {
		ev = r.Logger.Info()
	}
	ev.Str("path", abs).
		Str("trend", string(res.Trend)).
		Float64("confidence", res.Confidence).
		Bool("low_signal", res.LowSignal).
		Dur("took", time.Since(start)).
		Msg("analyzed")

	it.Result = res
	return it
}

// Command sketchaire-bench is the headless counterpart to cmd/sketchaire:
// it replays recorded pointer traces against a fresh Orchestrator per
// trace and reports the resulting shape, grounded on cmd/caire/main.go and
// exec.go's directory-walking concurrent batch mode.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/esimov/sketchaire/closure"
	"github.com/esimov/sketchaire/config"
	"github.com/esimov/sketchaire/encode"
	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/gesture"
	"github.com/esimov/sketchaire/input"
	"github.com/esimov/sketchaire/orchestrator"
	"github.com/esimov/sketchaire/resample"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/shapefit"
	"github.com/esimov/sketchaire/utils"
)

// result is one trace's outcome, mirroring exec.go's result type but
// carrying a fitted Shape instead of a resized-image path.
type result struct {
	Trace      string      `json:"trace"`
	Shape      shape.Shape `json:"shape,omitempty"`
	Err        string      `json:"error,omitempty"`
	ElapsedMs  int64       `json:"elapsed_ms"`
	SerialKind string      `json:"serial_kind,omitempty"`
	Disagrees  bool        `json:"disagrees,omitempty"`
}

func main() {
	var (
		in         string
		workers    int
		out        string
		configPath string
		serial     bool
	)
	fs := flag.NewFlagSet("sketchaire-bench", flag.ExitOnError)
	fs.StringVar(&in, "in", "", "directory of *.trace.json files to replay")
	fs.IntVar(&workers, "workers", runtime.NumCPU(), "number of traces to replay concurrently")
	fs.StringVar(&out, "out", "-", "destination for JSON results, - for stdout")
	fs.StringVar(&configPath, "config", "", "path to a TOML config file")
	fs.BoolVar(&serial, "serial", false, "cross-check the concurrent fit against shapefit.FitAll's serial path")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if in == "" {
		log.Fatal().Msg("sketchaire-bench: -in directory is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(errors.Wrap(err, "load config")).Send()
	}

	paths, err := walkTraces(in)
	if err != nil {
		log.Fatal().Err(errors.Wrap(err, "walk trace directory")).Send()
	}

	dst := os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			log.Fatal().Err(errors.Wrapf(err, "create %s", out)).Send()
		}
		defer f.Close()
		dst = f
	}

	var spinner *utils.Spinner
	if term.IsTerminal(int(os.Stderr.Fd())) {
		spinner = utils.NewSpinner(
			fmt.Sprintf("%s %s",
				utils.DecorateText("sketchaire-bench", utils.StatusMessage),
				utils.DecorateText("replaying traces...", utils.DefaultMessage),
			),
			time.Millisecond*80, true,
		)
		spinner.Start()
	}

	results := run(paths, workers, cfg, serial)

	enc := json.NewEncoder(dst)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			log.Error().Err(err).Msg("encode result")
		}
	}

	if spinner != nil {
		spinner.StopMsg = fmt.Sprintf("\n%s replayed %d traces\n",
			utils.DecorateText("sketchaire-bench", utils.SuccessMessage), len(results))
		spinner.Stop()
	}
}

// walkTraces returns every *.trace.json path under dir, following
// exec.go's walkDir convention of filtering by extension.
func walkTraces(dir string) ([]string, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.Mode().IsRegular() && strings.HasSuffix(path, ".trace.json") {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// run fans the trace paths out over a bounded worker pool, following
// exec.go's paths-channel/result-channel/sync.WaitGroup shape.
func run(paths []string, workers int, cfg config.Config, serial bool) []result {
	if workers <= 0 || workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	pathCh := make(chan string)
	resCh := make(chan result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range pathCh {
				resCh <- replayTrace(path, cfg, serial)
			}
		}()
	}

	go func() {
		defer close(pathCh)
		for _, p := range paths {
			pathCh <- p
		}
	}()

	go func() {
		defer close(resCh)
		wg.Wait()
	}()

	var results []result
	for r := range resCh {
		results = append(results, r)
	}
	return results
}

// replayTrace drives a fresh Orchestrator through a single recorded trace
// and reports its top-of-history shape, the non-interactive counterpart to
// what cmd/sketchaire's event loop does one pointer event at a time. With
// serial set, it additionally refits the same points through
// shapefit.FitAll's single-goroutine path and flags a disagreement.
func replayTrace(path string, cfg config.Config, serial bool) result {
	start := time.Now()
	res := result{Trace: path}

	f, err := os.Open(path)
	if err != nil {
		res.Err = errors.Wrap(err, "open trace").Error()
		return res
	}
	defer f.Close()

	trace, err := input.DecodeTrace(f)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	orch := orchestrator.New(cfg.Fit())
	orch.StrokeWidth = cfg.StrokeWidth

	input.Replay(orch.Tracker, trace,
		func(event gesture.Event, pos geom.Point) { orch.HandleEvent(event, pos) },
		func(pos geom.Point) { orch.ExtendLiveStroke(pos) },
	)

	shapes := orch.History.Shapes()
	res.ElapsedMs = time.Since(start).Milliseconds()
	if len(shapes) == 0 {
		res.Err = "trace produced no committed shape"
		return res
	}

	last := shapes[len(shapes)-1]
	b, err := encode.Shape(last)
	if err != nil {
		res.Err = errors.Wrap(err, "encode result shape").Error()
		return res
	}
	if err := json.Unmarshal(b, &res.Shape); err != nil {
		res.Err = errors.Wrap(err, "decode result shape").Error()
		return res
	}

	if serial {
		checkSerial(&res, trace, cfg)
	}
	return res
}

// checkSerial refits the trace's primary-pointer points through
// shapefit.FitAll and flags a disagreement with the concurrent pipeline's
// verdict, logged as a warning rather than failing the trace.
func checkSerial(res *result, trace input.Trace, cfg config.Config) {
	pts := primaryStrokePoints(trace)
	if len(pts) < 2 {
		return
	}
	resampled := resample.Resample(pts, cfg.Fit().ResampleCount)
	closed := closure.IsClosed(resampled, cfg.Fit().ClosureThresholdRatio)
	serialShape := shapefit.FitAll(resampled, cfg.StrokeWidth, closed, cfg.Fit())

	res.SerialKind = string(serialShape.Kind)
	res.Disagrees = res.SerialKind != string(res.Shape.Kind)
	if res.Disagrees {
		log.Warn().
			Str("trace", res.Trace).
			Str("concurrent", string(res.Shape.Kind)).
			Str("serial", res.SerialKind).
			Msg("sketchaire-bench: concurrent and serial fits disagree")
	}
}

// primaryStrokePoints collects the down/move positions of the first
// pointer to go down in the trace, mirroring the single-gesture assumption
// input.Replay already makes about recorded traces.
func primaryStrokePoints(trace input.Trace) []geom.Point {
	var primary int
	havePrimary := false
	var pts []geom.Point
	for _, ev := range trace.Events {
		if !havePrimary {
			if ev.Kind != input.RecordedDown {
				continue
			}
			primary = ev.PointerID
			havePrimary = true
		}
		if ev.PointerID != primary {
			continue
		}
		switch ev.Kind {
		case input.RecordedDown, input.RecordedMove:
			pts = append(pts, ev.Pos)
		}
	}
	return pts
}

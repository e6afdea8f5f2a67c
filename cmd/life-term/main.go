package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"life-ca/internal/core"
	"life-ca/internal/patterns"
	"life-ca/internal/render"
	"life-ca/internal/sims/life"
	engine "life-ca/pkg/life"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type options struct {
	width, height int
	gens          int
	pattern       string
	file          string
	x, y          int
	density       float64
	seed          int64
	gps           int
	live, dead    string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("life-term: ")

	opts := options{}
	flag.IntVar(&opts.width, "w", 8, "grid width")
	flag.IntVar(&opts.height, "h", 8, "grid height")
	flag.IntVar(&opts.gens, "gens", 20, "generations to print")
	flag.StringVar(&opts.pattern, "pattern", "glider-nw", "built-in pattern ("+strings.Join(patterns.Names(), ", ")+"); empty for a random soup")
	flag.StringVar(&opts.file, "file", "", "plaintext .cells file to seed instead of -pattern")
	flag.IntVar(&opts.x, "x", 1, "pattern column offset")
	flag.IntVar(&opts.y, "y", 1, "pattern row offset")
	flag.Float64Var(&opts.density, "density", 0.35, "live-cell probability for random soups")
	flag.Int64Var(&opts.seed, "seed", 42, "seed for random soups")
	flag.IntVar(&opts.gps, "gps", 0, "generations per second (0 prints as fast as possible)")
	flag.StringVar(&opts.live, "live", "*", "glyph for live cells")
	flag.StringVar(&opts.dead, "dead", ".", "glyph for dead cells")
	var overrides kvList
	flag.Var(&overrides, "set", "sim override in key=value form (repeatable)")
	flag.Parse()

	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.Fatalf("malformed -set %q, expected key=value", kv)
		}
		applyOverride(&opts, key, value)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, opts); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}

// applyOverride updates opts from a -set pair. Unparseable values keep the
// current setting.
func applyOverride(opts *options, key, value string) {
	switch key {
	case "w":
		if v, err := strconv.Atoi(value); err == nil && v > 0 {
			opts.width = v
		}
	case "h":
		if v, err := strconv.Atoi(value); err == nil && v > 0 {
			opts.height = v
		}
	case "density":
		if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 && v <= 1 {
			opts.density = v
		}
	case "pattern":
		opts.pattern = value
	case "seed":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			opts.seed = v
		}
	default:
		log.Printf("ignoring unknown override %q", key)
	}
}

func run(ctx context.Context, out io.Writer, opts options) error {
	if opts.width < 1 || opts.height < 1 {
		return fmt.Errorf("%w: got %dx%d", engine.ErrInvalidSize, opts.width, opts.height)
	}
	if len(opts.live) != 1 || len(opts.dead) != 1 {
		return fmt.Errorf("glyphs must be single bytes, got %q and %q", opts.live, opts.dead)
	}
	style := render.TextStyle{Live: opts.live[0], Dead: opts.dead[0]}

	sim := life.NewWithConfig(life.Config{Width: opts.width, Height: opts.height, Density: opts.density})
	pat, ok, err := loadPattern(opts)
	if err != nil {
		return err
	}
	if ok {
		sim.Stamp(pat, opts.x, opts.y)
	} else {
		sim.Reset(opts.seed)
	}

	var pacer *core.FixedStep
	if opts.gps > 0 {
		pacer = core.NewFixedStep(opts.gps)
	}
	for g := 0; g < opts.gens; g++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pacer != nil {
			pacer.Wait()
		}
		if err := render.WriteFrame(out, sim.Cells(), sim.Size(), g, sim.Population(), style); err != nil {
			return err
		}
		sim.Step()
	}
	return nil
}

// loadPattern resolves -file or -pattern. ok is false when neither is set and
// the board should be seeded with a random soup.
func loadPattern(opts options) (patterns.Pattern, bool, error) {
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return patterns.Pattern{}, false, err
		}
		defer f.Close()
		p, err := patterns.Parse(f)
		if err != nil {
			return patterns.Pattern{}, false, fmt.Errorf("%s: %w", opts.file, err)
		}
		return p, true, nil
	}
	if opts.pattern == "" {
		return patterns.Pattern{}, false, nil
	}
	p, err := patterns.Lookup(opts.pattern)
	if err != nil {
		return patterns.Pattern{}, false, err
	}
	return p, true, nil
}

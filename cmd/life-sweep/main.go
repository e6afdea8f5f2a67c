package main

import (
	"context"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"time"

	"life-ca/internal/sims/life"

	"golang.org/x/sync/errgroup"
)

// maxPeriod is the longest oscillation the settle detector recognises.
const maxPeriod = 15

type scenarioResult struct {
	seed       int64
	settledAt  int // generation at which the cycle was first entered, -1 if never
	period     int
	initialPop int
	finalPop   int
	peakPop    int
	flips      int
}

func (r scenarioResult) String() string {
	settled := "running"
	if r.settledAt >= 0 {
		settled = fmt.Sprintf("settled@%d p%d", r.settledAt, r.period)
	}
	return fmt.Sprintf("seed=%d %s pop %d->%d peak=%d flips=%d",
		r.seed, settled, r.initialPop, r.finalPop, r.peakPop, r.flips)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("life-sweep: ")

	steps := flag.Int("steps", 2000, "maximum generations per soup")
	seeds := flag.Int("seeds", 64, "number of soups to run")
	start := flag.Int64("start", 1, "first seed")
	width := flag.Int("w", 64, "grid width")
	height := flag.Int("h", 64, "grid height")
	density := flag.Float64("density", 0.35, "initial live-cell probability")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	cfg := life.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Density = *density

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %d soups of %dx%d at density %.2f (%d workers, %d steps)\n",
		*seeds, cfg.Width, cfg.Height, cfg.Density, *workers, *steps)

	began := time.Now()
	results, err := sweep(ctx, cfg, *start, *seeds, *steps, *workers)
	if err != nil {
		log.Fatal(err)
	}

	settled := 0
	settleSum := 0
	popSum := 0
	longest := scenarioResult{settledAt: -1}
	for _, res := range results {
		fmt.Println(res)
		popSum += res.finalPop
		if res.settledAt < 0 {
			continue
		}
		settled++
		settleSum += res.settledAt
		if res.settledAt > longest.settledAt {
			longest = res
		}
	}

	fmt.Printf("\n%d/%d soups settled within %d generations (elapsed %s)\n",
		settled, len(results), *steps, time.Since(began).Round(time.Millisecond))
	if settled > 0 {
		fmt.Printf("Mean settle generation %.1f, longest-lived seed %d (%d generations)\n",
			float64(settleSum)/float64(settled), longest.seed, longest.settledAt)
	}
	if len(results) > 0 {
		fmt.Printf("Mean final population %.1f\n", float64(popSum)/float64(len(results)))
	}
}

// sweep runs one independent soup per seed on a bounded worker group and
// returns the results ordered by seed.
func sweep(ctx context.Context, cfg life.Config, start int64, count, steps, workers int) ([]scenarioResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]scenarioResult, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			res, err := runScenario(ctx, cfg, start+int64(i), steps)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].seed < results[j].seed })
	return results, nil
}

// runScenario evolves one soup until its state repeats with a period of at
// most maxPeriod or the step budget runs out.
func runScenario(ctx context.Context, cfg life.Config, seed int64, steps int) (scenarioResult, error) {
	sim := life.NewWithConfig(cfg)
	sim.Reset(seed)

	res := scenarioResult{seed: seed, settledAt: -1, initialPop: sim.Population(), peakPop: sim.Population()}
	var history [maxPeriod + 1]uint64
	history[0] = fingerprint(sim.Cells())

	for gen := 1; gen <= steps; gen++ {
		if gen%64 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		sim.Step()
		res.flips += len(sim.LastChanges())
		if p := sim.Population(); p > res.peakPop {
			res.peakPop = p
		}

		h := fingerprint(sim.Cells())
		for period := 1; period <= maxPeriod && period <= gen; period++ {
			if history[(gen-period)%len(history)] == h {
				res.settledAt = gen - period
				res.period = period
				break
			}
		}
		history[gen%len(history)] = h
		if res.settledAt >= 0 {
			break
		}
	}
	res.finalPop = sim.Population()
	return res, nil
}

func fingerprint(cells []uint8) uint64 {
	h := fnv.New64a()
	h.Write(cells)
	return h.Sum64()
}

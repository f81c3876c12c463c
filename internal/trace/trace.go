// Package trace runs snow fields headlessly through a start, stop and drain
// cycle and records how long graceful stops take.
package trace

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"winter/pkg/core"
	"winter/pkg/snow"
)

// Frame is one row of the CSV frame log.
type Frame struct {
	Seed      int64  `csv:"seed"`
	Frame     uint64 `csv:"frame"`
	State     string `csv:"state"`
	Active    int    `csv:"active"`
	Draining  int    `csv:"draining"`
	Destroyed int    `csv:"destroyed"`
	Arrived   int    `csv:"arrived"`
	Expected  int    `csv:"expected"`
}

func frameOf(seed int64, st snow.Stats) Frame {
	return Frame{
		Seed:      seed,
		Frame:     st.Frames,
		State:     st.State.String(),
		Active:    st.Active,
		Draining:  st.Draining,
		Destroyed: st.Destroyed,
		Arrived:   st.Arrived,
		Expected:  st.Expected,
	}
}

// Recorder appends frames to a CSV stream, writing the header once.
type Recorder struct {
	w             io.Writer
	headerWritten bool
}

// NewRecorder returns a recorder writing to w. A nil writer yields a nil
// recorder, which discards everything.
func NewRecorder(w io.Writer) *Recorder {
	if w == nil {
		return nil
	}
	return &Recorder{w: w}
}

// Write appends frames.
func (r *Recorder) Write(frames []Frame) error {
	if r == nil || len(frames) == 0 {
		return nil
	}
	if !r.headerWritten {
		if err := gocsv.Marshal(frames, r.w); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(frames, r.w); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// Scenario describes one start, warm-up, stop and drain run.
type Scenario struct {
	Params        snow.Params
	Width, Height int
	WarmFrames    int
	MaxFrames     int // drain frames before giving up
	Record        bool
}

// Result is the outcome of one seeded run.
type Result struct {
	Seed        int64
	Particles   int
	DrainFrames int
	Completed   bool
	MeanSpeed   float64
	MeanSize    float64
	Frames      []Frame
}

// Run drives a fresh field seeded with seed through the scenario.
func (s Scenario) Run(seed int64) (Result, error) {
	clock := core.NewFrameClock(0)
	field, err := snow.NewField(s.Params, clock, core.NewRNG(seed))
	if err != nil {
		return Result{Seed: seed}, err
	}
	if err := field.Resize(s.Width, s.Height); err != nil {
		return Result{Seed: seed}, err
	}

	res := Result{Seed: seed, Particles: len(field.Particles())}
	step := func() {
		clock.Advance()
		field.Render(nil)
		if s.Record {
			res.Frames = append(res.Frames, frameOf(seed, field.Stats()))
		}
	}

	field.Start()
	for i := 0; i < s.WarmFrames; i++ {
		step()
	}

	speeds := make([]float64, 0, res.Particles)
	sizes := make([]float64, 0, res.Particles)
	for _, p := range field.Particles() {
		speeds = append(speeds, float64(p.Speed()))
		sizes = append(sizes, float64(p.Size()))
	}
	if len(speeds) > 0 {
		res.MeanSpeed = stat.Mean(speeds, nil)
		res.MeanSize = stat.Mean(sizes, nil)
	}

	field.Stop()
	for field.State() != snow.FieldIdle && res.DrainFrames < s.MaxFrames {
		step()
		res.DrainFrames++
	}
	res.Completed = field.State() == snow.FieldIdle
	return res, nil
}

// Sweep runs the scenario once per seed on a pool of workers and returns the
// results ordered by seed. Recorded frames are written to rec as each run
// finishes.
func Sweep(s Scenario, seeds []int64, workers int, rec *Recorder) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type outcome struct {
		res Result
		err error
	}
	jobs := make(chan int64)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				res, err := s.Run(seed)
				results <- outcome{res: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, seed := range seeds {
			jobs <- seed
		}
		close(jobs)
	}()

	var (
		all      []Result
		firstErr error
	)
	for out := range results {
		if out.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("seed %d: %w", out.res.Seed, out.err)
			}
			continue
		}
		if err := rec.Write(out.res.Frames); err != nil && firstErr == nil {
			firstErr = err
		}
		all = append(all, out.res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seed < all[j].Seed })
	return all, firstErr
}

// Summary aggregates drain timings across runs.
type Summary struct {
	Runs      int
	Completed int
	MeanDrain float64
	StdDrain  float64
	MinDrain  int
	MaxDrain  int
	MeanSpeed float64
	MeanSize  float64
}

// Summarize computes drain statistics over the completed runs.
func Summarize(results []Result) Summary {
	sum := Summary{Runs: len(results)}
	var drains, speeds, sizes []float64
	for _, r := range results {
		if !r.Completed {
			continue
		}
		if sum.Completed == 0 || r.DrainFrames < sum.MinDrain {
			sum.MinDrain = r.DrainFrames
		}
		if r.DrainFrames > sum.MaxDrain {
			sum.MaxDrain = r.DrainFrames
		}
		sum.Completed++
		drains = append(drains, float64(r.DrainFrames))
		speeds = append(speeds, r.MeanSpeed)
		sizes = append(sizes, r.MeanSize)
	}
	switch len(drains) {
	case 0:
		return sum
	case 1:
		sum.MeanDrain = drains[0]
	default:
		sum.MeanDrain, sum.StdDrain = stat.MeanStdDev(drains, nil)
	}
	sum.MeanSpeed = stat.Mean(speeds, nil)
	sum.MeanSize = stat.Mean(sizes, nil)
	return sum
}

func (s Summary) String() string {
	return fmt.Sprintf("runs=%d completed=%d drain mean=%.1f sd=%.1f min=%d max=%d speed=%.2f size=%.2f",
		s.Runs, s.Completed, s.MeanDrain, s.StdDrain, s.MinDrain, s.MaxDrain, s.MeanSpeed, s.MeanSize)
}

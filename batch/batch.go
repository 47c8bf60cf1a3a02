// Package batch runs the Decode pipeline over many files concurrently,
// bounding both parallelism and per-file wall-clock time so one
// pathological document can't stall or crash the whole run.
package batch

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yuna-baek/hwpdecode"
)

// DefaultTimeout mirrors the original implementation's TIMEOUT_SECONDS
// default for a single file.
const DefaultTimeout = 30 * time.Second

// Method records which stage produced (or failed to produce) an
// extraction, for downstream reporting — not a hwpdecode.Kind, since a
// batch result also needs to represent "never got a chance to run".
type Method string

const (
	MethodBodyText Method = "bodytext"
	MethodFailed   Method = "failed"
)

// Result is one file's outcome within a Summary.
type Result struct {
	Path    string
	Success bool
	Doc     *hwpdecode.Document
	Method  Method
	Err     error
}

// Summary is the outcome of processing a whole file list.
type Summary struct {
	Total, Success, Failed int
	Results                []Result
	StartedAt, FinishedAt  time.Time
}

// SuccessRate returns Success/Total, or 0 when Total is 0.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Total)
}

// Coordinator runs Decode over a file list with bounded concurrency.
type Coordinator struct {
	Workers     int
	Timeout     time.Duration
	MaxFileSize int64
}

// NewCoordinator builds a Coordinator defaulting Workers to half the
// available CPUs (floor 1) and Timeout to DefaultTimeout, matching
// BatchProcessor's max(1, cpu_count() // 2) default.
func NewCoordinator() *Coordinator {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return &Coordinator{Workers: workers, Timeout: DefaultTimeout}
}

// ProcessFiles decodes every path in files, at most c.Workers at a
// time, giving each file up to c.Timeout before recording it as a
// failure. A single file's timeout or panic never aborts the batch —
// it is recorded as Result{Method: MethodFailed} and processing
// continues.
func (c *Coordinator) ProcessFiles(ctx context.Context, files []string) Summary {
	started := time.Now()
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			results[i] = c.processOne(gctx, path)
			return nil
		})
	}
	// ProcessFiles never fails the group itself — each worker always
	// returns nil and records its own outcome in results[i] — so the
	// error from Wait is always nil and is not worth surfacing.
	_ = g.Wait()

	summary := Summary{Total: len(files), Results: results, StartedAt: started, FinishedAt: time.Now()}
	for _, r := range results {
		if r.Success {
			summary.Success++
		} else {
			summary.Failed++
		}
	}
	return summary
}

func (c *Coordinator) processOne(ctx context.Context, path string) (res Result) {
	done := make(chan Result, 1)
	go func() {
		// Decode runs on this goroutine, so a panic in it is recovered
		// here and reported as a failed result.
		defer func() {
			if rec := recover(); rec != nil {
				done <- Result{Path: path, Success: false, Method: MethodFailed, Err: panicError(rec)}
			}
		}()
		doc, err := hwpdecode.Decode(path, c.MaxFileSize)
		if err != nil {
			done <- Result{Path: path, Success: false, Method: MethodFailed, Err: err}
			return
		}
		done <- Result{Path: path, Success: true, Doc: doc, Method: MethodBodyText}
	}()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r
	case <-timer.C:
		return Result{Path: path, Success: false, Method: MethodFailed, Err: hwpdecode.NewError(hwpdecode.KindTimeout, path, nil)}
	case <-ctx.Done():
		return Result{Path: path, Success: false, Method: MethodFailed, Err: ctx.Err()}
	}
}

func panicError(rec any) error {
	return hwpdecode.NewError(hwpdecode.KindCorrupt, "", &recoveredPanic{rec})
}

type recoveredPanic struct{ v any }

func (p *recoveredPanic) Error() string {
	if err, ok := p.v.(error); ok {
		return err.Error()
	}
	return "panic during decode"
}

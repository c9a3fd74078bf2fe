// Package worker analyzes game lines in parallel.
package worker

import (
	"context"
	"sort"
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/processing"
)

// WorkItem is one game line to analyze.
type WorkItem struct {
	Index int // position in the input, used to restore order
	Line  string
}

// ProcessResult is the analysis of one work item.
type ProcessResult struct {
	Index    int
	Analysis *processing.GameAnalysis
	Skipped  bool // the pool was stopped before the item was analyzed
}

// ProcessFunc analyzes a work item.
type ProcessFunc func(ctx context.Context, item WorkItem) ProcessResult

// Analyze is the default ProcessFunc.
func Analyze(_ context.Context, item WorkItem) ProcessResult {
	return ProcessResult{Index: item.Index, Analysis: processing.AnalyzeText(item.Line)}
}

// Pool runs a fixed number of workers over a channel of work items.
type Pool struct {
	numWorkers int
	bufferSize int
	process    ProcessFunc

	work    chan WorkItem
	results chan ProcessResult
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size. Values below 1 are ignored.
func WithBufferSize(size int) Option {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithProcessFunc replaces the default analysis.
func WithProcessFunc(fn ProcessFunc) Option {
	return func(p *Pool) {
		if fn != nil {
			p.process = fn
		}
	}
}

// NewPool creates a pool bound to ctx. Cancelling ctx stops it like Stop.
// Default: 1 worker, buffer size of 10, Analyze.
func NewPool(ctx context.Context, opts ...Option) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 10,
		process:    Analyze,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.work = make(chan WorkItem, p.bufferSize)
	p.results = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.work {
		if p.IsStopped() {
			p.results <- ProcessResult{Index: item.Index, Skipped: true}
			continue
		}
		p.results <- p.process(p.ctx, item)
	}
}

// Submit queues an item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.work <- item
}

// TrySubmit queues an item without blocking. It returns false if the buffer
// is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.work <- item:
		return true
	default:
		return false
	}
}

// Stop makes workers skip the items still queued.
func (p *Pool) Stop() {
	p.cancel()
}

// IsStopped returns true once Stop was called or the context was cancelled.
func (p *Pool) IsStopped() bool {
	return p.ctx.Err() != nil
}

// Close closes the work channel, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
	close(p.results)
	p.cancel()
}

// Results returns the channel of processed items, in completion order.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run analyzes every line and returns the results in input order.
// With stopOnError the remaining lines are skipped after the first line
// that fails to replay.
func Run(ctx context.Context, lines []string, stopOnError bool, opts ...Option) []ProcessResult {
	p := NewPool(ctx, opts...)
	p.Start()

	go func() {
		for i, line := range lines {
			p.Submit(WorkItem{Index: i, Line: line})
		}
		p.Close()
	}()

	results := make([]ProcessResult, 0, len(lines))
	for r := range p.Results() {
		if stopOnError && r.Analysis != nil && !r.Analysis.Valid() {
			p.Stop()
		}
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}

// Package batch splits work into fixed-size batches and paces remote requests
// between them.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Split partitions items into consecutive batches of at most size elements.
// A size below one puts everything into a single batch.
func Split[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size < 1 {
		size = len(items)
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end:end])
	}
	return batches
}

// Options controls Run
type Options struct {
	Size       int
	Pause      time.Duration // between batches
	MaxBatches int           // 0 means no limit
	Sleep      SleepFunc
}

// Stats counts what Run did
type Stats struct {
	Batches int
	Failed  int
	Skipped int
}

// Run calls fn for every batch in order. A failing batch is logged and counted;
// the remaining batches still run. Only context cancellation stops Run early.
func Run[T any](ctx context.Context, items []T, opts Options, fn func(ctx context.Context, n int, items []T) error) (Stats, error) {
	var stats Stats

	sleep := opts.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	batches := Split(items, opts.Size)
	if opts.MaxBatches > 0 && len(batches) > opts.MaxBatches {
		stats.Skipped = len(batches) - opts.MaxBatches
		batches = batches[:opts.MaxBatches]
		log.Warn("batch limit reached", "limit", opts.MaxBatches, "skipped", stats.Skipped)
	}

	for i, items := range batches {
		if i > 0 {
			if err := sleep(ctx, opts.Pause); err != nil {
				return stats, err
			}
		}

		fmt.Printf("\n--- Batch %d of %d (%d items) ---\n", i+1, len(batches), len(items))
		stats.Batches++

		if err := fn(ctx, i+1, items); err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			log.Error("batch failed", "batch", i+1, "error", err)
			stats.Failed++
		}
	}

	return stats, nil
}

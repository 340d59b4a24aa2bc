package batch

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		size     int
		expected [][]int
	}{
		{
			name:     "even split",
			items:    []int{1, 2, 3, 4},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}},
		},
		{
			name:     "remainder in last batch",
			items:    []int{1, 2, 3, 4, 5},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}, {5}},
		},
		{
			name:     "size larger than input",
			items:    []int{1, 2},
			size:     10,
			expected: [][]int{{1, 2}},
		},
		{
			name:     "zero size means one batch",
			items:    []int{1, 2, 3},
			size:     0,
			expected: [][]int{{1, 2, 3}},
		},
		{
			name:     "empty input",
			items:    nil,
			size:     3,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.items, tt.size)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Split() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitBatchesDoNotAlias(t *testing.T) {
	batches := Split([]int{1, 2, 3, 4}, 2)

	first := append(batches[0], 99)
	if batches[1][0] != 3 {
		t.Errorf("appending to a batch overwrote the next one: %v", first)
	}
}

func TestRun(t *testing.T) {
	var pauses []time.Duration
	sleep := func(ctx context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}

	var seen [][]string
	stats, err := Run(context.Background(), []string{"a", "b", "c", "d", "e"}, Options{
		Size:  2,
		Pause: 2 * time.Second,
		Sleep: sleep,
	}, func(ctx context.Context, n int, items []string) error {
		seen = append(seen, items)
		if n == 2 {
			return errors.New("remote failure")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Batches != 3 || stats.Failed != 1 || stats.Skipped != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(seen) != 3 {
		t.Errorf("Expected 3 batches to run after a failure, got %d", len(seen))
	}
	if !reflect.DeepEqual(pauses, []time.Duration{2 * time.Second, 2 * time.Second}) {
		t.Errorf("Expected a pause between batches only, got %v", pauses)
	}
}

func TestRunMaxBatches(t *testing.T) {
	calls := 0
	stats, err := Run(context.Background(), []int{1, 2, 3, 4, 5, 6, 7}, Options{
		Size:       2,
		MaxBatches: 2,
		Sleep:      func(context.Context, time.Duration) error { return nil },
	}, func(ctx context.Context, n int, items []int) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
	if stats.Skipped != 2 {
		t.Errorf("Expected 2 skipped batches, got %d", stats.Skipped)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Run(ctx, []int{1, 2, 3}, Options{Size: 1}, func(ctx context.Context, n int, items []int) error {
		calls++
		cancel()
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call before cancellation, got %d", calls)
	}
}

func TestSleepRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := Sleep(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep did not return promptly on a cancelled context")
	}
}

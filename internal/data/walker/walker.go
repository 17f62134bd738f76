package walker

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/penwyp/go-claude-history/internal/util"
)

// Result carries one file's partial result out of the pool.
type Result[T any] struct {
	File  string
	Value T
	Err   error
}

// Process fans files out over a bounded worker pool and returns a channel of
// per-file results. Each worker owns its own accumulators; callers fold the
// partials with an associative merge so worker scheduling order cannot
// affect the final aggregate. A failed file still yields a Result so the
// caller can skip it and keep going.
func Process[T any](files []string, concurrency int, fn func(file string) (T, error)) <-chan Result[T] {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	start := time.Now()
	results := make(chan Result[T], len(files))
	var wg sync.WaitGroup

	util.LogDebug(fmt.Sprintf("Start concurrent processing of %d files, concurrency: %d", len(files), concurrency))

	semaphore := make(chan struct{}, concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			value, err := fn(f)
			if err != nil {
				util.LogDebug(fmt.Sprintf("File processing failed: %s, duration %v - %v", f, time.Since(fileStart), err))
			}

			results <- Result[T]{File: f, Value: value, Err: err}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)

		util.LogDebug(fmt.Sprintf("Concurrent processing finished, total duration: %v", time.Since(start)))
	}()

	return results
}

// Collect drains a result channel, dropping failed files.
func Collect[T any](results <-chan Result[T]) []T {
	var values []T
	for r := range results {
		if r.Err != nil {
			continue
		}
		values = append(values, r.Value)
	}
	return values
}

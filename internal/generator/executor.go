package generator

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/workspace"
)

const defaultWorkers = 8

// executor runs steps in parallel. Steps write distinct paths.
type executor struct {
	workers int
	dryRun  bool

	mu       sync.Mutex
	statuses map[string]string
}

func newExecutor(workers int, dryRun bool) *executor {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &executor{workers: workers, dryRun: dryRun, statuses: make(map[string]string)}
}

// run executes every step and returns the status of each path it reached.
// The first failure cancels steps that have not started.
func (e *executor) run(ctx context.Context, steps []Step) (map[string]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, step := range steps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			status, err := e.execute(step)
			if err != nil {
				e.record(step.Path, output.StatusFailed)
				return err
			}
			if status != "" {
				e.record(step.Path, status)
			}
			return nil
		})
	}

	err := g.Wait()
	return e.statuses, err
}

func (e *executor) record(path, status string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statuses[path] = status
}

func (e *executor) execute(step Step) (string, error) {
	if step.IfAbsent && workspace.Exists(step.Path) {
		return output.StatusSkipped, nil
	}

	data, err := step.Content()
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", step.Path, err)
	}
	if data == nil {
		return "", nil
	}

	status, err := workspace.StatusFor(step.Path, data)
	if err != nil || e.dryRun || status == output.StatusUnchanged {
		return status, err
	}

	if step.Write != nil {
		return status, step.Write()
	}
	if _, err := workspace.WriteFile(step.Path, data, step.Mode); err != nil {
		return "", err
	}
	return status, nil
}

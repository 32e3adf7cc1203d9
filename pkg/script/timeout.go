package script

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/voro3/pkg/voronoi"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalResult passes evaluation results through channels.
type evalResult struct {
	ctx    *voronoi.Context3D
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, returning a timeout
// error if the evaluation exceeds EvalTimeout. A generation counter
// discards stale results: on timeout the goroutine may still be
// running, and the check ensures its late result is dropped.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*voronoi.Context3D, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.ctx, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}

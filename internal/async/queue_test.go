package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateQueueProcessesAllJobs(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}

	proc := func(_ context.Context, job Job) error {
		mu.Lock()
		defer mu.Unlock()
		seen[job.InputPath] = true
		return nil
	}

	q := NewEstimateQueue(proc, nil, WithWorkers(3), WithQueueSize(16))
	inputs := []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"}
	for _, in := range inputs {
		assert.NoError(t, q.Enqueue(context.Background(), Job{InputPath: in, SubmittedAt: time.Now()}))
	}
	q.Shutdown(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, len(inputs))
}

func TestEstimateQueueEnqueueAfterShutdown(t *testing.T) {
	q := NewEstimateQueue(func(context.Context, Job) error { return nil }, nil)
	q.Shutdown(context.Background())

	// dropped quietly, never panics on the closed channel
	assert.NoError(t, q.Enqueue(context.Background(), Job{InputPath: "late.txt"}))
}

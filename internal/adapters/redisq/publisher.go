package redisq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
)

// InMemoryPublisher stands in for the redis-stream dispatcher in local and
// test runs. It still exercises serialization so a task that cannot be
// published fails here too.
type InMemoryPublisher struct {
	sequence  uint64
	published atomic.Int64
}

func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{}
}

func (p *InMemoryPublisher) PublishBuildTask(_ context.Context, task models.BuildTask) (models.PublishResult, error) {
	_, err := json.Marshal(task)
	if err != nil {
		return models.PublishResult{}, err
	}
	p.published.Add(1)
	id := atomic.AddUint64(&p.sequence, 1)
	return models.PublishResult{MessageID: fmt.Sprintf("msg-%d", id)}, nil
}

// PublishedCount reports how many tasks were handed off; used by tests.
func (p *InMemoryPublisher) PublishedCount() int64 {
	return p.published.Load()
}

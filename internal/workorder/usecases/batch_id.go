package usecases

import (
	"fmt"
	"sync"
	"time"

	"dcops-server/internal/workorder/domain"
)

const _batchIDTimeLayout = "20060102150405"

func NewBatchIDGenerator() *BatchIDGenerator {
	return &BatchIDGenerator{now: time.Now}
}

// BatchIDGenerator produces batch IDs of the form PREFIX + yyyymmddhhmmss.
// IDs generated within the same second get a numeric suffix so concurrent
// creations never collide. The sequence is tracked per prefix, so different
// operation types created in the same second stay unsuffixed.
type BatchIDGenerator struct {
	mu        sync.Mutex
	now       func() time.Time
	lastStamp map[string]string
	sequence  map[string]int
}

func (g *BatchIDGenerator) Next(operationType domain.OperationType) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lastStamp == nil {
		g.lastStamp = map[string]string{}
		g.sequence = map[string]int{}
	}

	prefix := operationType.BatchIDPrefix()
	stamp := g.now().UTC().Format(_batchIDTimeLayout)
	if stamp == g.lastStamp[prefix] {
		g.sequence[prefix]++
	} else {
		g.lastStamp[prefix] = stamp
		g.sequence[prefix] = 0
	}

	if g.sequence[prefix] == 0 {
		return prefix + stamp
	}

	return fmt.Sprintf("%s%s%02d", prefix, stamp, g.sequence[prefix])
}

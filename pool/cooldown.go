package pool

import (
	"sync"
	"time"

	"github.com/farmpool/poold/types"
)

// cooldowns blocks farmer updates for a while after each update.
type cooldowns struct {
	mu      sync.Mutex
	blocked map[types.Bytes32]*time.Timer
}

func newCooldowns() *cooldowns {
	return &cooldowns{blocked: make(map[types.Bytes32]*time.Timer)}
}

func (c *cooldowns) active(id types.Bytes32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.blocked[id]
	return ok
}

// start blocks id for d. It returns false if id is already blocked.
func (c *cooldowns) start(id types.Bytes32, d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.blocked[id]; ok {
		return false
	}
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.blocked[id] == timer {
			delete(c.blocked, id)
		}
	})
	c.blocked[id] = timer
	return true
}

// cancel lifts the block of id.
func (c *cooldowns) cancel(id types.Bytes32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timer, ok := c.blocked[id]; ok {
		timer.Stop()
		delete(c.blocked, id)
	}
}

// stop cancels every pending cooldown.
func (c *cooldowns) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.blocked {
		timer.Stop()
		delete(c.blocked, id)
	}
}

func (c *cooldowns) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocked)
}

package autosave

import (
	"context"
	"sync"
	"time"

	"ai-thinkspace-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Key identifies one logical field. Each key gets its own debouncer so edits
// to step 1 never delay or cancel a pending write for step 2.
type Key struct {
	SessionID  uuid.UUID
	StepNumber int
}

// WriteFunc persists one step's content. It must be durable before returning.
type WriteFunc func(ctx context.Context, sessionID uuid.UUID, stepNumber int, content string) error

// FailureFunc is invoked after the retry also fails, so the failure can be
// surfaced to the user instead of silently swallowed.
type FailureFunc func(key Key, content string, err error)

type pendingWrite struct {
	debouncer *Debouncer
	content   string
	dirty     bool

	// writeMu serializes commits for this key. Without it a slow in-flight
	// write of older content could land after a newer flushed write and
	// leave stale content as the final persisted state.
	writeMu sync.Mutex
}

// Coalescer batches rapid edits per key into a single write after the quiet
// interval, always using the content of the last call. Failed writes are
// retried once immediately; after that the content stays pending (nothing is
// lost) and the failure is surfaced through onFailure.
type Coalescer struct {
	mu        sync.Mutex
	interval  time.Duration
	writeWait time.Duration
	write     WriteFunc
	onFailure FailureFunc
	pending   map[Key]*pendingWrite
	log       logger.ILogger
}

func NewCoalescer(interval time.Duration, write WriteFunc, onFailure FailureFunc, log logger.ILogger) *Coalescer {
	if interval <= 0 {
		interval = 600 * time.Millisecond
	}
	return &Coalescer{
		interval:  interval,
		writeWait: 10 * time.Second,
		write:     write,
		onFailure: onFailure,
		pending:   make(map[Key]*pendingWrite),
		log:       log,
	}
}

// Queue records the latest content for a key and (re)starts its quiet timer.
func (c *Coalescer) Queue(sessionID uuid.UUID, stepNumber int, content string) {
	key := Key{SessionID: sessionID, StepNumber: stepNumber}

	c.mu.Lock()
	entry, ok := c.pending[key]
	if !ok {
		entry = &pendingWrite{debouncer: NewDebouncer(c.interval)}
		c.pending[key] = entry
	}
	entry.content = content
	entry.dirty = true
	c.mu.Unlock()

	entry.debouncer.Debounce(func() {
		c.commit(key)
	})
}

// Flush forces the pending write for one key immediately. Callers use this on
// navigation/unmount so no write is lost.
func (c *Coalescer) Flush(sessionID uuid.UUID, stepNumber int) {
	key := Key{SessionID: sessionID, StepNumber: stepNumber}

	c.mu.Lock()
	entry, ok := c.pending[key]
	c.mu.Unlock()
	if !ok {
		return
	}

	entry.debouncer.Cancel()
	c.commit(key)
}

// FlushSession forces every pending write belonging to one session. Callers
// use this before generation or deletion so the ledger snapshot is current.
func (c *Coalescer) FlushSession(sessionID uuid.UUID) {
	c.mu.Lock()
	keys := make([]Key, 0, len(c.pending))
	for key := range c.pending {
		if key.SessionID == sessionID {
			keys = append(keys, key)
		}
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.Flush(key.SessionID, key.StepNumber)
	}
}

// FlushAll forces every pending write, e.g. on shutdown.
func (c *Coalescer) FlushAll() {
	c.mu.Lock()
	keys := make([]Key, 0, len(c.pending))
	for key := range c.pending {
		keys = append(keys, key)
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.Flush(key.SessionID, key.StepNumber)
	}
}

// PendingCount reports how many keys still have an unwritten edit.
func (c *Coalescer) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, entry := range c.pending {
		if entry.dirty {
			count++
		}
	}
	return count
}

func (c *Coalescer) commit(key Key) {
	c.mu.Lock()
	entry, ok := c.pending[key]
	c.mu.Unlock()
	if !ok {
		return
	}

	entry.writeMu.Lock()
	defer entry.writeMu.Unlock()

	// Re-read under the lock: a commit that waited here picks up whatever
	// content arrived while the previous write was in flight.
	c.mu.Lock()
	if !entry.dirty {
		c.mu.Unlock()
		return
	}
	content := entry.content
	entry.dirty = false
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.writeWait)
	defer cancel()

	err := c.write(ctx, key.SessionID, key.StepNumber, content)
	if err != nil {
		// One immediate retry before surfacing.
		err = c.write(ctx, key.SessionID, key.StepNumber, content)
	}
	if err != nil {
		c.mu.Lock()
		// Keep the content pending unless a newer edit arrived meanwhile;
		// the next Queue or Flush will try again.
		if current, ok := c.pending[key]; ok && !current.dirty {
			current.content = content
			current.dirty = true
		}
		c.mu.Unlock()

		if c.log != nil {
			c.log.Error("Autosave", "Step write failed after retry", map[string]interface{}{
				"session_id":  key.SessionID.String(),
				"step_number": key.StepNumber,
				"error":       err.Error(),
			})
		}
		if c.onFailure != nil {
			c.onFailure(key, content, err)
		}
		return
	}

	c.mu.Lock()
	if current, ok := c.pending[key]; ok && !current.dirty {
		delete(c.pending, key)
	}
	c.mu.Unlock()
}

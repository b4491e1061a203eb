package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writeRecorder struct {
	mu     sync.Mutex
	writes []recordedWrite
	fail   int // number of upcoming calls that return an error
}

type recordedWrite struct {
	sessionID  uuid.UUID
	stepNumber int
	content    string
}

func (r *writeRecorder) write(_ context.Context, sessionID uuid.UUID, stepNumber int, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail > 0 {
		r.fail--
		return errors.New("db down")
	}
	r.writes = append(r.writes, recordedWrite{sessionID: sessionID, stepNumber: stepNumber, content: content})
	return nil
}

func (r *writeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

func (r *writeRecorder) last() recordedWrite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes[len(r.writes)-1]
}

func TestCoalescerSingleWrite(t *testing.T) {
	rec := &writeRecorder{}
	c := NewCoalescer(20*time.Millisecond, rec.write, nil, nil)

	sessionID := uuid.New()
	c.Queue(sessionID, 1, "hello")

	time.Sleep(80 * time.Millisecond)

	require.Equal(t, 1, rec.count())
	assert.Equal(t, "hello", rec.last().content)
	assert.Equal(t, 0, c.PendingCount())
}

func TestCoalescerRapidEditsCollapse(t *testing.T) {
	rec := &writeRecorder{}
	c := NewCoalescer(30*time.Millisecond, rec.write, nil, nil)

	sessionID := uuid.New()
	var final string
	for i := 0; i < 50; i++ {
		final = string(rune('a' + i%26))
		c.Queue(sessionID, 2, final)
		time.Sleep(time.Millisecond)
	}

	time.Sleep(120 * time.Millisecond)

	require.Equal(t, 1, rec.count(), "rapid edits must collapse into one write")
	assert.Equal(t, final, rec.last().content, "last content wins")
}

func TestCoalescerKeysAreIndependent(t *testing.T) {
	rec := &writeRecorder{}
	c := NewCoalescer(20*time.Millisecond, rec.write, nil, nil)

	sessionID := uuid.New()
	c.Queue(sessionID, 1, "step one")
	c.Queue(sessionID, 2, "step two")
	c.Queue(uuid.New(), 1, "other session")

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 3, rec.count(), "each key flushes on its own")
}

func TestCoalescerFlush(t *testing.T) {
	rec := &writeRecorder{}
	c := NewCoalescer(10*time.Second, rec.write, nil, nil)

	sessionID := uuid.New()
	c.Queue(sessionID, 1, "urgent")

	c.Flush(sessionID, 1)

	require.Equal(t, 1, rec.count(), "flush must not wait for the interval")
	assert.Equal(t, "urgent", rec.last().content)
}

func TestCoalescerFlushSession(t *testing.T) {
	rec := &writeRecorder{}
	c := NewCoalescer(10*time.Second, rec.write, nil, nil)

	target := uuid.New()
	other := uuid.New()
	c.Queue(target, 1, "a")
	c.Queue(target, 2, "b")
	c.Queue(other, 1, "c")

	c.FlushSession(target)

	require.Equal(t, 2, rec.count(), "only the target session flushes")
	assert.Equal(t, 1, c.PendingCount(), "the other session stays pending")
}

func TestCoalescerSlowWriteNeverBeatsNewerFlush(t *testing.T) {
	rec := &writeRecorder{}
	firstStarted := make(chan struct{})
	var calls int
	var mu sync.Mutex

	// The first write stalls long enough for a newer edit to be flushed
	// while it is still in flight.
	write := func(ctx context.Context, sessionID uuid.UUID, stepNumber int, content string) error {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(firstStarted)
			time.Sleep(150 * time.Millisecond)
		}
		return rec.write(ctx, sessionID, stepNumber, content)
	}

	c := NewCoalescer(10*time.Millisecond, write, nil, nil)
	sessionID := uuid.New()

	c.Queue(sessionID, 1, "v1")
	<-firstStarted

	c.Queue(sessionID, 1, "v2")
	c.Flush(sessionID, 1)

	require.Equal(t, 2, rec.count())
	assert.Equal(t, "v2", rec.last().content, "the newest content must land last")
	assert.Equal(t, 0, c.PendingCount())
}

func TestCoalescerFailureKeepsContent(t *testing.T) {
	rec := &writeRecorder{fail: 2} // first attempt and its retry both fail
	var failures []Key
	var mu sync.Mutex

	c := NewCoalescer(10*time.Second, rec.write, func(key Key, content string, err error) {
		mu.Lock()
		failures = append(failures, key)
		mu.Unlock()
	}, nil)

	sessionID := uuid.New()
	c.Queue(sessionID, 3, "must not be lost")
	c.Flush(sessionID, 3)

	mu.Lock()
	require.Len(t, failures, 1, "failure must be surfaced after retry")
	mu.Unlock()
	assert.Equal(t, 1, c.PendingCount(), "failed content stays pending")

	// Store recovers; the next flush drains the kept content.
	c.Flush(sessionID, 3)
	require.Equal(t, 1, rec.count())
	assert.Equal(t, "must not be lost", rec.last().content)
	assert.Equal(t, 0, c.PendingCount())
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Debounce(func() { fired <- struct{}{} })
	d.Cancel()

	select {
	case <-fired:
		t.Fatal("cancelled debounce must not fire")
	case <-time.After(80 * time.Millisecond):
	}
}

package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/kafka"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) published() []kafka.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]kafka.Event(nil), p.events...)
}

func TestCollectorPublishesOnClose(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewCollector(pub, 8)
	c.Start(context.Background())

	c.Track(QueryEvent{Type: EventQuery, Query: "what is python", Returned: 1})
	c.Track(QueryEvent{Type: EventZeroResult, Query: "???"})
	c.Close()

	events := pub.published()
	require.Len(t, events, 2)
	assert.Equal(t, "query", events[0].Key)
	assert.Equal(t, "what is python", events[0].Value.(QueryEvent).Query)
	assert.Equal(t, EventZeroResult, events[1].Value.(QueryEvent).Type)
}

func TestCollectorDrainsOnCancel(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewCollector(pub, 8)
	ctx, cancel := context.WithCancel(context.Background())
	c.Track(QueryEvent{Query: "first"})
	c.Start(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-c.done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, pub.published(), 1)
	c.Close()
}

func TestCollectorPublishErrorIsNotFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	c := NewCollector(pub, 1)
	c.Start(context.Background())
	c.Track(QueryEvent{Query: "q"})
	c.Close()
	assert.Len(t, pub.published(), 1)
}

func TestCollectorDropsWhenFull(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewCollector(pub, 1)
	c.Track(QueryEvent{Query: "kept"})
	c.Track(QueryEvent{Query: "dropped"})
	c.Start(context.Background())
	c.Close()

	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, "kept", events[0].Value.(QueryEvent).Query)
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.Start(context.Background())
	c.Track(QueryEvent{Query: "ignored"})
	c.Close()
}

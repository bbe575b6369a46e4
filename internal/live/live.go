// Package live implements push-based observation of changing query results.
//
// A Hub fans out "something changed" signals from writers to subscribers. A
// Stream re-runs its query after every signal and delivers the new snapshot
// on its Updates channel:
//
//   - the first snapshot is produced right after subscribing;
//   - publishing never blocks the writer (signals coalesce in a one-slot
//     buffer per subscriber);
//   - delivery is latest-wins, so a slow reader always receives the newest
//     snapshot rather than a backlog of stale ones;
//   - closing one stream, or cancelling its context, affects no other stream.
//
// The package does not log; callers decide what to do with Snapshot.Err.
package live

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrClosed is returned by Stream.Next once the stream has shut down.
var ErrClosed = errors.New("live: stream closed")

// Snapshot is one emission of a stream. Err is set when the query behind the
// stream failed; the stream stays open and emits again on the next change.
type Snapshot[T any] struct {
	Value T
	Err   error
}

// Query produces the current value of a stream.
type Query[T any] func(ctx context.Context) (T, error)

// Hub distributes change notifications to active streams. The zero value is
// not usable; call NewHub.
type Hub struct {
	mu   sync.Mutex
	subs map[uint64]chan struct{}
	next uint64
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan struct{})}
}

// Publish signals every subscriber that the underlying data changed.
func (h *Hub) Publish() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default: // already pending
		}
	}
}

// Subscribers reports the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) subscribe() (uint64, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	ch := make(chan struct{}, 1)
	h.subs[h.next] = ch
	return h.next, ch
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Stream is a live subscription. Read snapshots from Updates (or Next) and
// call Close when done.
type Stream[T any] struct {
	id     string
	out    chan Snapshot[T]
	cancel context.CancelFunc
	done   chan struct{}
}

func newStream[T any](id string, cancel context.CancelFunc) *Stream[T] {
	return &Stream[T]{
		id:     id,
		out:    make(chan Snapshot[T], 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// ID identifies the stream in logs. Derived streams share their source's ID.
func (s *Stream[T]) ID() string { return s.id }

// Updates returns the snapshot channel. It is closed when the stream ends.
func (s *Stream[T]) Updates() <-chan Snapshot[T] { return s.out }

// Done is closed once the stream's worker has exited.
func (s *Stream[T]) Done() <-chan struct{} { return s.done }

// Close cancels the stream and waits for its worker to exit. It is safe to
// call more than once.
func (s *Stream[T]) Close() {
	s.cancel()
	<-s.done
}

// Next blocks until the next snapshot, ctx cancellation, or stream shutdown.
func (s *Stream[T]) Next(ctx context.Context) (Snapshot[T], error) {
	select {
	case v, ok := <-s.out:
		if !ok {
			return Snapshot[T]{}, ErrClosed
		}
		return v, nil
	case <-ctx.Done():
		return Snapshot[T]{}, ctx.Err()
	}
}

// offer delivers v, replacing an unread snapshot if there is one. Only the
// stream's own worker calls it, so the loop always terminates.
func (s *Stream[T]) offer(v Snapshot[T]) {
	for {
		select {
		case s.out <- v:
			return
		default:
		}
		select {
		case <-s.out:
		default:
		}
	}
}

// Watch subscribes to h and returns a stream that runs q now and again after
// every Publish. The stream ends when ctx is cancelled or Close is called.
func Watch[T any](ctx context.Context, h *Hub, q Query[T]) *Stream[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := newStream[T](uuid.NewString(), cancel)

	// Subscribe before the first query so no change can slip in between.
	id, signal := h.subscribe()

	go func() {
		defer close(s.done)
		defer close(s.out)
		defer h.unsubscribe(id)

		for {
			v, err := q(ctx)
			if ctx.Err() != nil {
				return
			}
			s.offer(Snapshot[T]{Value: v, Err: err})

			select {
			case <-ctx.Done():
				return
			case <-signal:
			}
		}
	}()
	return s
}

// Map derives a stream by applying fn to every snapshot of src. The derived
// stream owns src: closing it closes src, and it ends when src ends.
func Map[A, B any](src *Stream[A], fn func(Snapshot[A]) Snapshot[B]) *Stream[B] {
	ctx, cancel := context.WithCancel(context.Background())
	dst := newStream[B](src.id, cancel)

	go func() {
		defer close(dst.done)
		defer close(dst.out)
		defer src.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case a, ok := <-src.out:
				if !ok {
					return
				}
				dst.offer(fn(a))
			}
		}
	}()
	return dst
}

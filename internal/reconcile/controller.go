// Package reconcile keeps locally predicted interaction state (like toggles,
// comment counters) consistent with server confirmations. It backs clients
// that render a flip immediately and settle with the server afterwards.
package reconcile

import (
	"context"
	"sync"

	"agriconnect/internal/middleware"
)

// TargetKind distinguishes the two likeable entities.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target identifies one likeable item.
type Target struct {
	Kind TargetKind
	ID   uint
}

// Phase is the per-item reconciliation phase.
type Phase int

const (
	// Idle means the local state matches the last server confirmation.
	Idle Phase = iota
	// Pending means at least one mutation is in flight and the local state
	// is a prediction.
	Pending
	// Reverting means the latest mutation failed and the local state was
	// rolled back to its pre-toggle snapshot. Acknowledge returns the item
	// to Idle.
	Reverting
)

// Snapshot is the locally tracked aggregate state of a target.
type Snapshot struct {
	Liked         bool
	LikesCount    int
	CommentsCount int
}

// MutateFunc performs the server mutation for a toggle. A non-nil Snapshot
// carries server aggregates that replace the local prediction; nil keeps the
// prediction as-is.
type MutateFunc func(ctx context.Context) (*Snapshot, error)

// Outcome reports how one toggle attempt settled.
type Outcome struct {
	Target  Target
	Attempt uint64
	// Applied is false when the response arrived after a newer attempt had
	// already settled and was therefore dropped.
	Applied bool
	// Reverted is true when the attempt failed and the snapshot was restored.
	Reverted bool
	State    Snapshot
	Err      error
}

type item struct {
	phase       Phase
	state       Snapshot
	nextAttempt uint64
	lastApplied uint64
	inFlight    int
}

// Controller reconciles optimistic toggles per target. All methods are safe
// for concurrent use.
type Controller struct {
	mu    sync.Mutex
	items map[Target]*item
}

// NewController returns an empty controller.
func NewController() *Controller {
	return &Controller{items: make(map[Target]*item)}
}

// Seed installs the server-rendered state for a target, replacing whatever
// the controller tracked before.
func (c *Controller) Seed(target Target, state Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[target] = &item{phase: Idle, state: state}
}

// State returns the current local state and phase of a target.
func (c *Controller) State(target Target) (Snapshot, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[target]
	if !ok {
		return Snapshot{}, Idle
	}
	return it.state, it.phase
}

// Acknowledge clears a Reverting phase after the caller has surfaced the
// failure. A no-op in any other phase.
func (c *Controller) Acknowledge(target Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.items[target]; ok && it.phase == Reverting {
		it.phase = Idle
	}
}

// Toggle flips the target's liked state optimistically and dispatches mutate
// in the background. It returns the predicted state immediately and a channel
// that yields the attempt's outcome once the server responds.
//
// Responses settle last-write-wins: an outcome arriving after a newer attempt
// has already been applied is dropped. A failed attempt that does apply
// restores the exact snapshot taken when it was dispatched.
func (c *Controller) Toggle(ctx context.Context, target Target, mutate MutateFunc) (Snapshot, <-chan Outcome) {
	c.mu.Lock()
	it, ok := c.items[target]
	if !ok {
		it = &item{}
		c.items[target] = it
	}

	snapshot := it.state
	predicted := snapshot
	if predicted.Liked {
		predicted.Liked = false
		predicted.LikesCount--
	} else {
		predicted.Liked = true
		predicted.LikesCount++
	}
	if predicted.LikesCount < 0 {
		predicted.LikesCount = 0
	}

	it.nextAttempt++
	attempt := it.nextAttempt
	it.state = predicted
	it.phase = Pending
	it.inFlight++
	c.mu.Unlock()

	done := make(chan Outcome, 1)
	go func() {
		server, err := mutate(ctx)
		done <- c.settle(target, attempt, snapshot, server, err)
	}()

	return predicted, done
}

func (c *Controller) settle(target Target, attempt uint64, snapshot Snapshot, server *Snapshot, err error) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.items[target]
	it.inFlight--

	if attempt < it.lastApplied {
		// A newer attempt already settled; this response is stale. It still
		// counts towards draining the in-flight window.
		if it.inFlight == 0 && it.phase == Pending {
			it.phase = Idle
		}
		return Outcome{Target: target, Attempt: attempt, State: it.state}
	}
	it.lastApplied = attempt

	out := Outcome{Target: target, Attempt: attempt, Applied: true, Err: err}
	if err != nil {
		it.state = snapshot
		if it.inFlight == 0 {
			it.phase = Reverting
		}
		out.Reverted = true
		middleware.Logger.Warn("toggle reverted",
			"target_kind", string(target.Kind),
			"target_id", target.ID,
			"attempt", attempt,
			"error", err)
	} else {
		if server != nil {
			it.state = *server
		}
		if it.inFlight == 0 {
			it.phase = Idle
		}
	}
	out.State = it.state
	return out
}

// SubmitComment runs submit synchronously and bumps the post's local comment
// counter only after the server confirms. Comment creation is never
// optimistic.
func (c *Controller) SubmitComment(ctx context.Context, post Target, submit func(ctx context.Context) error) error {
	if err := submit(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[post]
	if !ok {
		it = &item{}
		c.items[post] = it
	}
	it.state.CommentsCount++
	return nil
}

package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func target() Target {
	return Target{Kind: TargetPost, ID: 1}
}

func TestToggle_PredictsImmediately(t *testing.T) {
	c := NewController()
	c.Seed(target(), Snapshot{Liked: false, LikesCount: 4})

	release := make(chan struct{})
	predicted, done := c.Toggle(context.Background(), target(), func(ctx context.Context) (*Snapshot, error) {
		<-release
		return nil, nil
	})

	// The flip is visible before the server responds.
	assert.True(t, predicted.Liked)
	assert.Equal(t, 5, predicted.LikesCount)

	state, phase := c.State(target())
	assert.Equal(t, predicted, state)
	assert.Equal(t, Pending, phase)

	close(release)
	out := <-done
	assert.True(t, out.Applied)
	assert.NoError(t, out.Err)

	state, phase = c.State(target())
	assert.Equal(t, predicted, state)
	assert.Equal(t, Idle, phase)
}

func TestToggle_ServerAggregatesWin(t *testing.T) {
	c := NewController()
	c.Seed(target(), Snapshot{Liked: false, LikesCount: 4})

	// Another user liked in between; the server count is ahead of the
	// prediction.
	_, done := c.Toggle(context.Background(), target(), func(ctx context.Context) (*Snapshot, error) {
		return &Snapshot{Liked: true, LikesCount: 6, CommentsCount: 2}, nil
	})
	out := <-done
	require.True(t, out.Applied)

	state, phase := c.State(target())
	assert.Equal(t, Snapshot{Liked: true, LikesCount: 6, CommentsCount: 2}, state)
	assert.Equal(t, Idle, phase)
}

func TestToggle_FailureRestoresSnapshot(t *testing.T) {
	c := NewController()
	seed := Snapshot{Liked: true, LikesCount: 9, CommentsCount: 3}
	c.Seed(target(), seed)

	_, done := c.Toggle(context.Background(), target(), func(ctx context.Context) (*Snapshot, error) {
		return nil, errors.New("network down")
	})
	out := <-done
	require.True(t, out.Applied)
	assert.True(t, out.Reverted)
	assert.Error(t, out.Err)

	// The exact pre-toggle snapshot is back, not a re-flip.
	state, phase := c.State(target())
	assert.Equal(t, seed, state)
	assert.Equal(t, Reverting, phase)

	c.Acknowledge(target())
	_, phase = c.State(target())
	assert.Equal(t, Idle, phase)
}

func TestToggle_StaleResponseDropped(t *testing.T) {
	c := NewController()
	c.Seed(target(), Snapshot{Liked: false, LikesCount: 0})

	firstRelease := make(chan struct{})
	secondRelease := make(chan struct{})

	// First toggle: like. Held until after the second settles.
	_, firstDone := c.Toggle(context.Background(), target(), func(ctx context.Context) (*Snapshot, error) {
		<-firstRelease
		return &Snapshot{Liked: true, LikesCount: 1}, nil
	})

	// Second toggle: unlike, predicted on top of the first prediction.
	predicted, secondDone := c.Toggle(context.Background(), target(), func(ctx context.Context) (*Snapshot, error) {
		<-secondRelease
		return &Snapshot{Liked: false, LikesCount: 0}, nil
	})
	assert.False(t, predicted.Liked)
	assert.Equal(t, 0, predicted.LikesCount)

	// The second (newer) attempt settles first.
	close(secondRelease)
	out := <-secondDone
	require.True(t, out.Applied)

	// The first response is now stale and must not resurrect the like.
	close(firstRelease)
	out = <-firstDone
	assert.False(t, out.Applied)

	state, phase := c.State(target())
	assert.Equal(t, Snapshot{Liked: false, LikesCount: 0}, state)
	assert.Equal(t, Idle, phase)
}

func TestToggle_RapidDoubleToggleNeverOverOrUndercounts(t *testing.T) {
	c := NewController()
	c.Seed(target(), Snapshot{Liked: false, LikesCount: 0})

	// Simulated server with real toggle semantics.
	var mu sync.Mutex
	serverLiked := false
	mutate := func(ctx context.Context) (*Snapshot, error) {
		mu.Lock()
		defer mu.Unlock()
		serverLiked = !serverLiked
		count := 0
		if serverLiked {
			count = 1
		}
		return &Snapshot{Liked: serverLiked, LikesCount: count}, nil
	}

	_, firstDone := c.Toggle(context.Background(), target(), mutate)
	_, secondDone := c.Toggle(context.Background(), target(), mutate)
	<-firstDone
	<-secondDone

	state, _ := c.State(target())
	assert.GreaterOrEqual(t, state.LikesCount, 0)
	assert.LessOrEqual(t, state.LikesCount, 1)
	if state.Liked {
		assert.Equal(t, 1, state.LikesCount)
	} else {
		assert.Equal(t, 0, state.LikesCount)
	}
}

func TestToggle_UnseededTargetStartsEmpty(t *testing.T) {
	c := NewController()

	predicted, done := c.Toggle(context.Background(), Target{Kind: TargetComment, ID: 8}, func(ctx context.Context) (*Snapshot, error) {
		return nil, nil
	})
	assert.True(t, predicted.Liked)
	assert.Equal(t, 1, predicted.LikesCount)
	<-done
}

func TestSubmitComment_BumpsOnlyAfterConfirmation(t *testing.T) {
	c := NewController()
	c.Seed(target(), Snapshot{CommentsCount: 2})

	err := c.SubmitComment(context.Background(), target(), func(ctx context.Context) error {
		// Not yet bumped while the submission is in flight.
		state, _ := c.State(target())
		assert.Equal(t, 2, state.CommentsCount)
		return nil
	})
	require.NoError(t, err)

	state, _ := c.State(target())
	assert.Equal(t, 3, state.CommentsCount)
}

func TestSubmitComment_FailureLeavesCounter(t *testing.T) {
	c := NewController()
	c.Seed(target(), Snapshot{CommentsCount: 2})

	err := c.SubmitComment(context.Background(), target(), func(ctx context.Context) error {
		return errors.New("rejected")
	})
	require.Error(t, err)

	state, _ := c.State(target())
	assert.Equal(t, 2, state.CommentsCount)
}

package agent

import (
	"errors"
	"sync/atomic"
	"time"

	"stratego/game"
)

// ErrSearchInFlight is returned when a move is requested while a previous
// request on the same orchestrator has not yet delivered its result. The
// turn layer must guarantee at most one outstanding search per session.
var ErrSearchInFlight = errors.New("a move request is already in flight")

type asyncResult struct {
	move game.Move
	err  error
}

// Request is a poll-style handle to a move computation running in the
// background. There is no cancel signal: the deadline inside the search
// bounds the work, and a caller that no longer wants the result simply
// drops the handle.
type Request struct {
	result chan asyncResult
	done   atomic.Bool
	move   game.Move
	err    error
}

// Poll returns (move, true, nil) once the search has delivered. Until then
// it returns ready=false without blocking. Poll keeps returning the final
// answer on subsequent calls.
func (r *Request) Poll() (game.Move, bool, error) {
	if r.done.Load() {
		return r.move, true, r.err
	}
	select {
	case res := <-r.result:
		r.move = res.move
		r.err = res.err
		r.done.Store(true)
		return r.move, true, r.err
	default:
		return game.Move{}, false, nil
	}
}

// Wait blocks until the result is available.
func (r *Request) Wait() (game.Move, error) {
	if r.done.Load() {
		return r.move, r.err
	}
	res := <-r.result
	r.move = res.move
	r.err = res.err
	r.done.Store(true)
	return r.move, r.err
}

// RequestMoveAsync dispatches RequestMove as a background worker and
// returns a handle the caller can poll once per frame. Issuing a second
// request while one is in flight fails with ErrSearchInFlight.
func (o *Orchestrator) RequestMoveAsync(gs *game.GameState, difficulty Difficulty, timeLimit time.Duration) (*Request, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSearchInFlight
	}

	req := &Request{result: make(chan asyncResult, 1)}
	snapshot := gs.Copy()
	go func() {
		defer o.inFlight.Store(false)
		move, err := o.RequestMove(snapshot, difficulty, timeLimit)
		req.result <- asyncResult{move: move, err: err}
	}()
	return req, nil
}

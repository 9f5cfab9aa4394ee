package ingestion

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/salesdash-lab/salesdash/internal/core/sales"
)

var (
	// ErrDatasetLoading is returned while the one-time load is still running.
	ErrDatasetLoading = errors.New("dataset is still loading")

	// ErrDatasetFailed wraps the reason the load failed. The state is terminal.
	ErrDatasetFailed = errors.New("dataset failed to load")
)

// Status is the lifecycle of the session's dataset.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

type loadState struct {
	status  Status
	dataset *sales.Dataset
	reason  string
}

// Holder publishes the outcome of the load to concurrent readers.
// It moves from loading to exactly one of ready or failed and never back.
type Holder struct {
	state atomic.Pointer[loadState]
}

// NewHolder returns a Holder in the loading state.
func NewHolder() *Holder {
	h := &Holder{}
	h.state.Store(&loadState{status: StatusLoading})
	return h
}

// Ready publishes ds. It reports false if the holder already left the loading state.
func (h *Holder) Ready(ds *sales.Dataset) bool {
	if ds == nil {
		return false
	}
	return h.transition(&loadState{status: StatusReady, dataset: ds})
}

// Fail records reason. It reports false if the holder already left the loading state.
func (h *Holder) Fail(reason string) bool {
	return h.transition(&loadState{status: StatusFailed, reason: reason})
}

func (h *Holder) transition(next *loadState) bool {
	cur := h.state.Load()
	if cur.status != StatusLoading {
		return false
	}
	return h.state.CompareAndSwap(cur, next)
}

// Current returns the loaded dataset, ErrDatasetLoading, or an error wrapping ErrDatasetFailed.
func (h *Holder) Current() (*sales.Dataset, error) {
	st := h.state.Load()
	switch st.status {
	case StatusReady:
		return st.dataset, nil
	case StatusFailed:
		return nil, fmt.Errorf("%w: %s", ErrDatasetFailed, st.reason)
	default:
		return nil, ErrDatasetLoading
	}
}

// Status returns the current state and, when failed, its reason.
func (h *Holder) Status() (Status, string) {
	st := h.state.Load()
	return st.status, st.reason
}

// Hooks returns loader callbacks that publish into this holder.
func (h *Holder) Hooks() Hooks {
	return Hooks{
		OnReady:   func(ds *sales.Dataset) { h.Ready(ds) },
		OnFailure: func(reason string) { h.Fail(reason) },
	}
}

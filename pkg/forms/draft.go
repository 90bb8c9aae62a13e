package forms

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// State is the submission lifecycle of a draft:
// idle -> submitting -> (succeeded | failed) -> idle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

// ErrSubmitInFlight is returned when a submission is attempted while one is
// already running. The caller is expected to disable its submit control
// during StateSubmitting; this is the backstop for when it doesn't.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Draft holds the in-progress field values of a form before a successful
// submission. Fields reset on success and are preserved on failure so the
// user can correct and resubmit.
type Draft struct {
	mu      sync.Mutex
	order   []string
	fields  map[string]string
	state   State
	message string
	errMsg  string
}

func NewDraft(fields ...string) *Draft {
	d := &Draft{
		order:  append([]string(nil), fields...),
		fields: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		d.fields[f] = ""
	}
	return d
}

func (d *Draft) Set(field, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[field] = value
	// Editing clears stale outcome messages, like the pages did on keystroke.
	d.errMsg = ""
	d.message = ""
}

func (d *Draft) Get(field string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields[field]
}

// Values returns a copy of the current field values.
func (d *Draft) Values() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

func (d *Draft) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Draft) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.message
}

func (d *Draft) ErrMsg() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

// FirstMissing returns the first declared field whose value is empty after
// trimming, if any.
func (d *Draft) FirstMissing() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.order {
		if strings.TrimSpace(d.fields[f]) == "" {
			return f, true
		}
	}
	return "", false
}

// Submit runs fn with a snapshot of the current values. Only one submission
// may be in flight at a time. On success the fields reset to empty and the
// returned message is kept; on failure the fields are preserved and the
// error message is kept.
func (d *Draft) Submit(ctx context.Context, fn func(ctx context.Context, values map[string]string) (string, error)) (string, error) {
	d.mu.Lock()
	if d.state == StateSubmitting {
		d.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	d.state = StateSubmitting
	d.message = ""
	d.errMsg = ""
	values := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		values[k] = v
	}
	d.mu.Unlock()

	msg, err := fn(ctx, values)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.state = StateFailed
		d.errMsg = err.Error()
		return "", err
	}
	d.state = StateSucceeded
	d.message = msg
	for k := range d.fields {
		d.fields[k] = ""
	}
	return msg, nil
}

package executor

import (
	"sync"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/notification"
)

// StepFunc performs or compensates one effect on a collaborator
type StepFunc func(c ctx.Ctx) error

type step struct {
	name string
	undo StepFunc
}

type emitted struct {
	id     domain.ItemId
	events []notification.Event
}

// Op is the unit of work handed to an Execute callback. Effects applied through
// it are compensated in reverse order when the operation fails.
type Op struct {
	mu      sync.Mutex
	applied []step
	events  []emitted
	done    bool
}

// Apply runs do and, when it succeeds, journals undo as its compensation. undo
// may be nil for effects that are discarded with the store transaction.
func (o *Op) Apply(c ctx.Ctx, name string, do, undo StepFunc) error {
	if err := do(c); err != nil {
		c.WithFields(log.Fields{"err": err, "step": name}).Warn("step failed")
		return err
	}
	o.mu.Lock()
	o.applied = append(o.applied, step{name: name, undo: undo})
	o.mu.Unlock()
	return nil
}

// Emit queues events of item id. They are recorded inside the transaction and
// dispatched once it has committed.
func (o *Op) Emit(id domain.ItemId, events ...notification.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, emitted{id: id, events: events})
}

// Steps returns the names of the applied steps in order
func (o *Op) Steps() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, len(o.applied))
	for i, s := range o.applied {
		names[i] = s.name
	}
	return names
}

// rollback compensates every applied step, latest first. It returns the names
// of the steps whose compensation failed.
func (o *Op) rollback(c ctx.Ctx) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return nil
	}
	o.done = true

	var failed []string
	for i := len(o.applied) - 1; i >= 0; i-- {
		s := o.applied[i]
		if s.undo == nil {
			continue
		}
		if err := s.undo(c); err != nil {
			c.WithFields(log.Fields{"err": err, "step": s.name}).Error("compensate failed")
			failed = append(failed, s.name)
		}
	}
	o.applied = nil
	return failed
}

func (o *Op) seal() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done = true
}

package tool

import "sync"

// Deferred is the pending result of an interactive tool. It settles exactly
// once; later Resolve or Reject calls are ignored.
type Deferred struct {
	mu      sync.Mutex
	settled bool
	done    chan struct{}
	payload Payload
	err     error
}

// NewDeferred returns an unsettled Deferred.
func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolve settles the deferred with a payload. It reports whether this call
// settled it.
func (d *Deferred) Resolve(p Payload) bool {
	return d.settle(p, nil)
}

// Reject settles the deferred with an error. A nil err is treated as ErrCancelled.
func (d *Deferred) Reject(err error) bool {
	if err == nil {
		err = ErrCancelled
	}
	return d.settle(nil, err)
}

// Apply runs fn and settles with its result: a payload resolves, an error
// rejects. fn is not called once the deferred has settled. Resolve and Reject
// calls made while fn runs wait for it and then lose.
func (d *Deferred) Apply(fn func() (Payload, error)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.settled {
		return false
	}
	p, err := fn()
	if err != nil {
		return d.settleLocked(nil, err)
	}
	return d.settleLocked(p, nil)
}

func (d *Deferred) settle(p Payload, err error) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settleLocked(p, err)
}

func (d *Deferred) settleLocked(p Payload, err error) bool {
	if d.settled {
		return false
	}
	d.settled = true
	d.payload, d.err = p, err
	close(d.done)
	return true
}

// Done is closed once the deferred settles.
func (d *Deferred) Done() <-chan struct{} { return d.done }

// Settled reports whether Resolve or Reject has been called.
func (d *Deferred) Settled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Result returns the settled payload or error. It must only be called after
// Done is closed.
func (d *Deferred) Result() (Payload, error) {
	<-d.done
	return d.payload, d.err
}

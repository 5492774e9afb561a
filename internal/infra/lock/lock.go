package lock

import (
	"context"
	"fmt"
	"sync"
)

// Locker provides mutual exclusion per key. Unlock must be called exactly
// once for every successful Lock.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func AdvocateKey(advocateID uint) string {
	return fmt.Sprintf("lock:advocate:%d", advocateID)
}

func InvoiceKey(invoiceID uint) string {
	return fmt.Sprintf("lock:invoice:%d", invoiceID)
}

// Local is an in-process Locker. It only serializes callers within one
// process; multi-instance deployments use Redis.
type Local struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocal() *Local {
	return &Local{slots: make(map[string]*slot)}
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(key, s)
		})
	}, nil
}

func (l *Local) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

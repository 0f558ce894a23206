package reconcile

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// keyLocks serializes work per key. Entries are dropped once no caller holds or
// waits on them.
type keyLocks struct {
	mu   sync.Mutex
	held map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

// globalLocks is shared by every sweep in the process.
var globalLocks = &keyLocks{held: make(map[string]*keyLock)}

// globalSweeps coalesces concurrent full sweeps of the same family.
var globalSweeps singleflight.Group

// acquire blocks until key is free or ctx is done.
func (l *keyLocks) acquire(ctx context.Context, key string) (unlock func(), err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	kl, ok := l.held[key]
	if !ok {
		kl = &keyLock{sem: make(chan struct{}, 1)}
		l.held[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.sem <- struct{}{}:
		return func() {
			<-kl.sem
			l.release(key, kl)
		}, nil
	case <-ctx.Done():
		l.release(key, kl)
		return nil, ctx.Err()
	}
}

func (l *keyLocks) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.held, key)
	}
}

func (l *keyLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

func lockKey(adapter, key string) string {
	return adapter + "|" + key
}

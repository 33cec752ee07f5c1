package common

import (
	"sync"

	"github.com/puzpuzpuz/xsync"
)

// KeyLocker serializes operations sharing the same key. Toggle operations lock
// on the pair they modify so two concurrent requests for the same pair resolve
// one after another.
type KeyLocker struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func NewKeyLocker() *KeyLocker {
	return &KeyLocker{locks: xsync.NewMapOf[*sync.Mutex]()}
}

func (l *KeyLocker) Lock(key string) {
	mutex, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	mutex.Lock()
}

func (l *KeyLocker) Unlock(key string) {
	mutex, ok := l.locks.Load(key)
	if ok {
		mutex.Unlock()
	}
}

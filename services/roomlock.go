package services

import (
	"sort"
	"sync"
	"time"
)

// RoomLocker serializes mutating operations per room number. Cross-room
// operations proceed fully in parallel; there is no global lock. Acquire is
// bounded by a timeout so a contended room surfaces ErrBusy instead of
// blocking the request forever.
type RoomLocker struct {
	mu    sync.Mutex
	locks map[string]*roomLock
}

type roomLock struct {
	sem  chan struct{} // capacity 1
	refs int
}

func NewRoomLocker() *RoomLocker {
	return &RoomLocker{locks: make(map[string]*roomLock)}
}

// Acquire takes the exclusion scope for a room, waiting at most timeout.
// On success the returned release func must be called exactly once.
func (l *RoomLocker) Acquire(roomNumber string, timeout time.Duration) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[roomNumber]
	if !ok {
		entry = &roomLock{sem: make(chan struct{}, 1)}
		l.locks[roomNumber] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-entry.sem
				l.put(roomNumber, entry)
			})
		}, nil
	case <-time.After(timeout):
		l.put(roomNumber, entry)
		return nil, ErrBusy
	}
}

// AcquireAll locks several rooms in sorted key order so two concurrent
// room moves can never deadlock. On failure, already-held locks are released.
func (l *RoomLocker) AcquireAll(roomNumbers []string, timeout time.Duration) (func(), error) {
	keys := append([]string(nil), roomNumbers...)
	sort.Strings(keys)
	// dedupe: locking the same room twice would self-deadlock
	uniq := keys[:0]
	for i, k := range keys {
		if i == 0 || keys[i-1] != k {
			uniq = append(uniq, k)
		}
	}

	releases := make([]func(), 0, len(uniq))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, room := range uniq {
		release, err := l.Acquire(room, timeout)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}

func (l *RoomLocker) put(roomNumber string, entry *roomLock) {
	l.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, roomNumber)
	}
	l.mu.Unlock()
}

package service

import "sync"

// entityLocks serializes read-modify-write cycles on the same entity id
// within one process. Services sharing a database across processes still
// race.
type entityLocks struct {
	m sync.Map // id -> *sync.Mutex
}

// lock blocks until id is free and returns the matching unlock.
func (l *entityLocks) lock(id string) func() {
	v, _ := l.m.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

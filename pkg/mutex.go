package pkg

import "sync"

// HasLocker is satisfied by both Table and Engine: anything that exposes
// its single-writer/many-reader lock can be driven through LockWrap/
// RLockWrap instead of call sites repeating Lock/defer Unlock.
type HasLocker interface{ GetLocker() *sync.RWMutex }

func LockWrap(i HasLocker, f func()) {
	i.GetLocker().Lock()
	defer i.GetLocker().Unlock()
	f()
}

func RLockWrap(i HasLocker, f func()) {
	i.GetLocker().RLock()
	defer i.GetLocker().RUnlock()
	f()
}

package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net"
	"sync"
)

// ErrAlreadyRunning indicates another kiosk already owns the display.
var ErrAlreadyRunning = errors.New("kiosk already running")

const (
	lockHost    = "127.0.0.1"
	lockPortMin = 20000
	lockPortMax = 39999
)

// DisplayLock keeps a second kiosk process from opening a competing
// fullscreen window. It is held for as long as the listener stays bound.
type DisplayLock struct {
	mu       sync.Mutex
	appName  string
	address  string
	listener net.Listener
}

// LockDisplay takes the display lock for appName.
func LockDisplay(appName string) (*DisplayLock, error) {
	address := LockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: lock %s held: %v", ErrAlreadyRunning, address, err)
	}
	slog.Debug("Display lock acquired", "app", appName, "address", address)
	return &DisplayLock{appName: appName, address: address, listener: listener}, nil
}

// LockAddress returns the localhost address used as the lock for appName.
func LockAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(lockPortMax - lockPortMin + 1)
	port := lockPortMin + int(hash.Sum32()%span)
	return net.JoinHostPort(lockHost, fmt.Sprint(port))
}

// Unlock releases the display. Calling it again is a no-op.
func (lock *DisplayLock) Unlock() error {
	if lock == nil {
		return nil
	}
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	if err != nil {
		return fmt.Errorf("release display lock %s: %w", lock.address, err)
	}
	slog.Debug("Display lock released", "app", lock.appName)
	return nil
}

// Held reports whether the lock is still bound.
func (lock *DisplayLock) Held() bool {
	if lock == nil {
		return false
	}
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.listener != nil
}

// Address returns the bound address.
func (lock *DisplayLock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

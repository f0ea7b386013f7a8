package directorysvc

import (
	"context"
	"net/mail"
	"sync"

	"github.com/aulavivo/backend/core"
)

// noopDirectory is the stand-in used while the accounts service owns user
// identity: it resolves nobody, so notifications are silently skipped.
type noopDirectory struct{}

var _ core.Directory = (*noopDirectory)(nil)

func NewNoopDirectory() core.Directory {
	return &noopDirectory{}
}

func (noopDirectory) UserAddress(context.Context, int) (mail.Address, bool) {
	return mail.Address{}, false
}

// StaticDirectory resolves addresses from a fixed in-memory table. Useful
// for tests and local tooling.
type StaticDirectory struct {
	mu    sync.RWMutex
	addrs map[int]mail.Address
}

var _ core.Directory = (*StaticDirectory)(nil)

func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{addrs: make(map[int]mail.Address)}
}

func (d *StaticDirectory) Register(userID int, addr mail.Address) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addrs[userID] = addr
}

func (d *StaticDirectory) UserAddress(_ context.Context, userID int) (mail.Address, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	addr, ok := d.addrs[userID]
	return addr, ok
}

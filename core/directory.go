package core

import (
	"context"
	"net/mail"
)

// Directory resolves user contact addresses. Identity is owned by an
// external accounts service; the engine only ever needs an address to
// notify, so this is the whole boundary.
type Directory interface {
	UserAddress(ctx context.Context, userID int) (addr mail.Address, ok bool)
}

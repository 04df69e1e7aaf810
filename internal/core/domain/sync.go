package domain

import (
	"time"

	"github.com/google/uuid"
)

// SyncKind identifies the remote cart mutation a SyncCommand mirrors.
type SyncKind string

const (
	SyncAdd     SyncKind = "add"
	SyncDelete  SyncKind = "delete"
	SyncReplace SyncKind = "replace" // delete then add Quantity
)

// SyncCommand is a detached request to mirror a local cart change remotely.
type SyncCommand struct {
	ID         string
	Kind       SyncKind
	ProductID  string
	Quantity   int
	Credential Credential
	IssuedAt   time.Time
}

// NewSyncCommand builds a command without a credential; the cart store
// attaches one at dispatch time.
func NewSyncCommand(kind SyncKind, productID string, quantity int) SyncCommand {
	return SyncCommand{
		ID:        uuid.NewString(),
		Kind:      kind,
		ProductID: productID,
		Quantity:  quantity,
		IssuedAt:  time.Now().UTC(),
	}
}

// SyncOutcome records how a SyncCommand ended. Err is nil on success.
type SyncOutcome struct {
	Command  SyncCommand
	Err      error
	Duration time.Duration
	WorkerID int
}

// OK reports whether the remote call succeeded.
func (o SyncOutcome) OK() bool { return o.Err == nil }

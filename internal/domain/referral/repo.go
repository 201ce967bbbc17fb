package referral

import (
	"context"
	"errors"
	"time"
)

// ErrStatusChanged is returned by UpdateStatus when the referral no longer has
// the expected status, or no longer exists.
var ErrStatusChanged = errors.New("referral status changed")

// Edits carries the scheduling fields written together with a status change.
// Nil fields are left as stored.
type Edits struct {
	DateTime *time.Time
	Notes    *string
}

type Repository interface {
	Create(ctx context.Context, r *Referral) error
	GetByID(ctx context.Context, id int64) (*Referral, error)
	List(ctx context.Context) ([]*Referral, error)
	Update(ctx context.Context, r *Referral) error
	// UpdateStatus moves the referral from one status to another, applying
	// edits, in a single conditional write.
	UpdateStatus(ctx context.Context, id int64, from, to Status, edits Edits) (*Referral, error)
	Delete(ctx context.Context, id int64) error
}

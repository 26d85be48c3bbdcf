package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy surfaced to callers. Anything else coming out of the
// service is a persistence failure for the current operation; nothing is
// retried and transactions roll back whole.
var (
	// ErrNotFound marks operations referencing an identifier that does not
	// exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument marks rejected inputs: unknown split strategies,
	// empty participant lists, non-positive amounts, backward status moves.
	ErrInvalidArgument = errors.New("invalid argument")
)

// translate maps gorm's record-not-found onto the ledger taxonomy, leaving
// other errors untouched.
func translate(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return err
}

// invalidf builds an ErrInvalidArgument with a formatted reason.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

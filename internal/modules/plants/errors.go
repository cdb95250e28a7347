package plants

import (
	"errors"
	"fmt"
)

// Client-facing validation messages.
const (
	msgMissingFields = "Missing required fields: 'name', 'image', and 'price'"
	msgEmptyFields   = "Name, image, and price cannot be empty."
	msgInvalidPrice  = "Price must be a valid number."
)

// ErrIntegrity reports a constraint violation surfaced by the store
// while persisting a plant. Handlers map it to 400.
var ErrIntegrity = errors.New("Failed to create plant due to data integrity issue.")

// ValidationError rejects a create payload. Handlers map it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError reports a lookup for an id that is not in the store.
// Handlers map it to 404. ID is kept as text so ids too large for
// int64 still render verbatim.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Plant with id %s not found", e.ID)
}

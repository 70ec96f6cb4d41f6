package registration

import "fmt"

// NotFoundError is returned when a registration document does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registration not found: %s", e.ID)
}

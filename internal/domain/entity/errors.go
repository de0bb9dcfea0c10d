package entity

import "fmt"

// ValidationError carries the field that failed validation together with a
// message safe to return to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

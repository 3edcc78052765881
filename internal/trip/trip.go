package trip

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("trip not found")

// Trip groups expenses made during one journey.
type Trip struct {
	ID          int64
	Name        string
	StartDate   *time.Time
	EndDate     *time.Time
	Location    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

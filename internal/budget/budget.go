package budget

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("budget not found")

// Budget is a monthly plan. Income sources and category allocations are
// free-form JSON documents owned by the frontend; the backend stores them
// opaquely.
type Budget struct {
	ID            int64
	Name          string
	Currency      string
	IncomeSources json.RawMessage
	Categories    json.RawMessage
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

package appointment

import (
	"context"

	"github.com/BruksfildServices01/braids-scheduler/internal/state"
)

// Repository is the application state container seen by the use cases.
// Update runs fn as one unit: either every change is persisted or none is.
type Repository interface {
	View(ctx context.Context, fn func(st *state.State) error) error
	Update(ctx context.Context, fn func(st *state.State) error) error
}

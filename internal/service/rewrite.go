package service

import (
	"context"
	"errors"

	"github.com/user/promptlab-go/internal/models"
)

// ErrUnavailable signals that a rewrite strategy is not configured at all,
// as opposed to a configured strategy failing at request time. Both route
// the pipeline to the next strategy; only the label differs.
var ErrUnavailable = errors.New("rewrite strategy unavailable")

// RewriteStrategy transforms an original prompt into an optimized one.
// A non-nil error means "no result from this strategy, try the next one";
// it is never surfaced to the caller of the pipeline.
type RewriteStrategy interface {
	// Name is the model/strategy label recorded in the pipeline result.
	Name() string
	// Mode identifies the rewrite path for the result's mode field.
	Mode() models.RewriteMode
	Rewrite(ctx context.Context, original string, examples []string, analysis models.Analysis) (string, error)
}

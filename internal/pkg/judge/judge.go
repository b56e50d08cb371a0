// Package judge wraps the external language model used to evaluate
// coding solutions. Services depend on the CodeJudge interface so tests
// can substitute a deterministic fake.
package judge

import (
	"context"
	"errors"
)

// ErrJudgeUnavailable is returned when the model cannot be reached or
// responds with a non-success status.
var ErrJudgeUnavailable = errors.New("code judge unavailable")

// CodeJudge sends a prompt to the evaluation model and returns its raw
// text completion. Implementations must honor ctx cancellation.
type CodeJudge interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

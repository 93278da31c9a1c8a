package judge

import "context"

// EvalRequest describes one solution to check.
type EvalRequest struct {
	ProblemID string
	Code      string
	Language  string
}

// Verdict is the outcome of a single evaluation. ExecTimeMs is reported
// for telemetry only and has no effect on scoring.
type Verdict struct {
	Accepted   bool
	ExecTimeMs int
}

// Judge is the external code-execution collaborator. Implementations own
// sandboxing and retries; callers await a single boolean outcome per
// submission.
type Judge interface {
	Evaluate(ctx context.Context, req EvalRequest) (Verdict, error)
}

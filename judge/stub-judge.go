package judge

import "context"

// StubJudge evaluates submissions with a fixed function. It backs local
// development and tests, where no evaluator fleet is running.
type StubJudge struct {
	Fn func(req EvalRequest) (Verdict, error)
}

func NewStubJudge() *StubJudge {
	return &StubJudge{
		Fn: func(req EvalRequest) (Verdict, error) {
			return Verdict{Accepted: true, ExecTimeMs: 1}, nil
		},
	}
}

func (j *StubJudge) Evaluate(ctx context.Context, req EvalRequest) (Verdict, error) {
	return j.Fn(req)
}

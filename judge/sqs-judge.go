package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
)

// evalReq is the message sent to the evaluator fleet.
type evalReq struct {
	EvalUuid  string `json:"eval_uuid"`
	ResSqsUrl string `json:"res_sqs_url"`
	ProblemID string `json:"problem_id"`
	Code      string `json:"code"`
	Language  string `json:"language"`
}

// evalRes is the message the evaluator fleet sends back.
type evalRes struct {
	EvalUuid   string `json:"eval_uuid"`
	Accepted   bool   `json:"accepted"`
	ExecTimeMs int    `json:"exec_time_ms"`
}

// SqsJudge sends evaluation requests to an SQS submission queue and waits
// for the matching verdict on a response queue. A single background
// receiver dispatches verdicts to the waiting Evaluate calls by eval UUID.
type SqsJudge struct {
	logger *slog.Logger

	sqsClient  *sqs.Client
	submSqsUrl string
	resSqsUrl  string
	timeout    time.Duration

	lock    sync.Mutex
	waiting map[string]chan evalRes
}

func NewSqsJudge(sqsClient *sqs.Client, submSqsUrl, resSqsUrl string, timeout time.Duration) *SqsJudge {
	j := &SqsJudge{
		logger:     slog.Default().With("module", "judge"),
		sqsClient:  sqsClient,
		submSqsUrl: submSqsUrl,
		resSqsUrl:  resSqsUrl,
		timeout:    timeout,
		waiting:    make(map[string]chan evalRes),
	}
	go j.receiveLoop()
	return j
}

func (j *SqsJudge) Evaluate(ctx context.Context, req EvalRequest) (Verdict, error) {
	evalUuid, err := uuid.NewV7()
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to generate eval UUID: %w", err)
	}

	jsonReq, err := json.Marshal(evalReq{
		EvalUuid:  evalUuid.String(),
		ResSqsUrl: j.resSqsUrl,
		ProblemID: req.ProblemID,
		Code:      req.Code,
		Language:  req.Language,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to marshal evaluation request: %w", err)
	}

	ch := make(chan evalRes, 1)
	j.lock.Lock()
	j.waiting[evalUuid.String()] = ch
	j.lock.Unlock()
	defer func() {
		j.lock.Lock()
		delete(j.waiting, evalUuid.String())
		j.lock.Unlock()
	}()

	_, err = j.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(j.submSqsUrl),
		MessageBody: aws.String(string(jsonReq)),
	})
	if err != nil {
		return Verdict{}, ErrEvaluatorUnavailable().SetDebug(err)
	}

	select {
	case res := <-ch:
		return Verdict{Accepted: res.Accepted, ExecTimeMs: res.ExecTimeMs}, nil
	case <-time.After(j.timeout):
		return Verdict{}, ErrEvaluatorUnavailable().SetDebug(
			fmt.Errorf("no verdict for eval %s within %v", evalUuid, j.timeout))
	case <-ctx.Done():
		return Verdict{}, ctx.Err()
	}
}

// dispatch hands a verdict to the Evaluate call waiting on it. The
// waiter is removed from the map first and the send never blocks: SQS
// delivers at-least-once, so a redelivered verdict, or a waiter that
// already timed out with its buffer full, must not stall the single
// receive loop.
func (j *SqsJudge) dispatch(res evalRes) {
	j.lock.Lock()
	ch, ok := j.waiting[res.EvalUuid]
	if ok {
		delete(j.waiting, res.EvalUuid)
	}
	j.lock.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- res:
	default:
	}
}

func (j *SqsJudge) receiveLoop() {
	for {
		out, err := j.sqsClient.ReceiveMessage(context.Background(), &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(j.resSqsUrl),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			j.logger.Error("failed to receive from response queue", "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range out.Messages {
			var res evalRes
			if err := json.Unmarshal([]byte(*msg.Body), &res); err != nil {
				j.logger.Error("failed to unmarshal verdict", "error", err)
				continue
			}

			j.dispatch(res)

			_, err = j.sqsClient.DeleteMessage(context.Background(), &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(j.resSqsUrl),
				ReceiptHandle: msg.ReceiptHandle,
			})
			if err != nil {
				j.logger.Error("failed to delete verdict message", "error", err)
			}
		}
	}
}

package judge0

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-resty/resty/v2"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

const (
	batchPath    = "/submissions/batch"
	resultFields = "token,stdout,stderr,compile_output,status,memory,time"
)

var _ secondary.JudgeClient = (*Client)(nil)

// errBatchPending is returned from a poll round while any result is still queued or running.
var errBatchPending = errors.New("judge batch still pending")

type Client struct {
	client       *resty.Client
	logger       primary.Logger
	pollInterval time.Duration
	maxAttempts  int
	pollTimeout  time.Duration
}

type batchRequest struct {
	Submissions []domain.JudgeSubmission `json:"submissions"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type batchResponse struct {
	Submissions []*domain.JudgeResult `json:"submissions"`
}

func New(cfg *config.JudgeConfig, logger primary.Logger) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json")
	if cfg.AuthToken != "" {
		client.SetHeader("X-Auth-Token", cfg.AuthToken)
	}

	return &Client{
		client:       client,
		logger:       logger,
		pollInterval: cfg.PollInterval,
		maxAttempts:  cfg.PollMaxAttempts,
		pollTimeout:  cfg.PollTimeout,
	}
}

func (c *Client) SubmitBatch(ctx context.Context, submissions []domain.JudgeSubmission) ([]domain.BatchToken, error) {
	if len(submissions) == 0 {
		return nil, errs.New(errs.KindValidation, "no test cases to submit")
	}

	var out []*tokenResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("base64_encoded", "false").
		SetBody(batchRequest{Submissions: submissions}).
		SetResult(&out).
		ForceContentType("application/json").
		Post(batchPath)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, err, "Failed to submit code to judge")
	}
	if resp.IsError() {
		return nil, errs.Wrap(errs.KindUpstream,
			fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()), "Failed to submit code to judge")
	}
	if len(out) != len(submissions) {
		return nil, errs.Wrap(errs.KindUpstream,
			fmt.Errorf("expected %d tokens, got %d", len(submissions), len(out)), "Unexpected response from judge")
	}

	tokens := make([]domain.BatchToken, len(out))
	for i, t := range out {
		if t == nil || t.Token == "" {
			return nil, errs.Wrap(errs.KindUpstream,
				fmt.Errorf("missing token for test case %d", i+1), "Unexpected response from judge")
		}
		tokens[i] = domain.BatchToken(t.Token)
	}

	c.logger.Debug("submitted batch to judge", "count", len(tokens))
	return tokens, nil
}

// FetchBatch reads the current state of every token once, in token order.
func (c *Client) FetchBatch(ctx context.Context, tokens []domain.BatchToken) ([]domain.JudgeResult, error) {
	ids := make([]string, len(tokens))
	for i, t := range tokens {
		ids[i] = string(t)
	}

	var out batchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"tokens":         strings.Join(ids, ","),
			"base64_encoded": "false",
			"fields":         resultFields,
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Get(batchPath)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, err, "Failed to fetch results from judge")
	}
	if resp.IsError() {
		return nil, errs.Wrap(errs.KindUpstream,
			fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()), "Failed to fetch results from judge")
	}

	return orderByToken(tokens, out.Submissions)
}

func orderByToken(tokens []domain.BatchToken, results []*domain.JudgeResult) ([]domain.JudgeResult, error) {
	if len(results) != len(tokens) {
		return nil, errs.Wrap(errs.KindUpstream,
			fmt.Errorf("expected %d results, got %d", len(tokens), len(results)), "Unexpected response from judge")
	}

	byToken := make(map[domain.BatchToken]*domain.JudgeResult, len(results))
	for i, r := range results {
		if r == nil {
			return nil, errs.Wrap(errs.KindUpstream,
				fmt.Errorf("empty result for test case %d", i+1), "Unexpected response from judge")
		}
		if r.Status == nil {
			return nil, errs.Wrap(errs.KindUpstream,
				fmt.Errorf("result for test case %d has no status", i+1), "Unexpected response from judge")
		}
		byToken[r.Token] = r
	}

	ordered := make([]domain.JudgeResult, len(tokens))
	for i, t := range tokens {
		r, ok := byToken[t]
		if !ok {
			// judge did not echo tokens back, fall back to response order
			r = results[i]
			if r.Token != "" {
				return nil, errs.Wrap(errs.KindUpstream,
					fmt.Errorf("no result for token %s", t), "Unexpected response from judge")
			}
		}
		ordered[i] = *r
		ordered[i].Token = t
	}
	return ordered, nil
}

// PollBatchResults fetches the batch until all results are terminal. Polling stops
// after the configured attempts, the poll timeout, or ctx, whichever comes first.
func (c *Client) PollBatchResults(ctx context.Context, tokens []domain.BatchToken) ([]domain.JudgeResult, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	attempt := 0
	results, err := backoff.Retry(ctx, func() ([]domain.JudgeResult, error) {
		attempt++
		results, err := c.FetchBatch(ctx, tokens)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		for _, r := range results {
			if !r.Terminal() {
				c.logger.Debug("judge batch pending", "attempt", attempt, "tokens", len(tokens))
				return nil, errBatchPending
			}
		}
		return results, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.pollInterval)),
		backoff.WithMaxTries(uint(c.maxAttempts)),
		backoff.WithMaxElapsedTime(c.pollTimeout),
	)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Unwrap()
		}
		// only exhaustion or a done ctx is a judge timeout; request timeouts stay upstream
		if errors.Is(err, errBatchPending) || ctx.Err() != nil {
			c.logger.Warn("judge polling gave up", "attempts", attempt, "error", err)
			return nil, errs.Wrap(errs.KindJudgeTimeout, err, "Timed out waiting for judge results")
		}
		return nil, err
	}
	return results, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const traceIDHeader = "X-Trace-ID"

// Config locates the server. It is read from SYNCCTL_* variables and
// overridden by flags.
type Config struct {
	Server  string        `env:"SERVER" envDefault:"http://localhost:8080"`
	Token   string        `env:"TOKEN"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5m"`
}

// Client talks to the sync server. Each request carries a fresh trace id so
// failures can be matched with server logs.
type Client struct {
	http     *utils.HTTPClient
	traceIDs *utils.UUIDGenerator
}

var _ SyncAPI = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if cfg.Server == "" {
		return nil, ErrEmptyServerAddress
	}
	baseURL, err := utils.NormalizeBaseURL(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("server address: %w", err)
	}

	c := utils.NewHTTPClient()
	c.SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		c.SetAuthToken(cfg.Token)
	}
	return &Client{http: c, traceIDs: utils.NewUUIDGenerator()}, nil
}

// do sends the request and returns the raw body when the status is one of
// ok. Any other status becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values, ok ...int) ([]byte, int, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(traceIDHeader, c.traceIDs.Generate())
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	for _, s := range ok {
		if status == s {
			return resp.Body(), status, nil
		}
	}
	return nil, status, apiError(resp)
}

func apiError(resp *resty.Response) *APIError {
	body := resp.Body()
	e := &APIError{
		Status:  resp.StatusCode(),
		Message: gjson.GetBytes(body, "error").String(),
		TraceID: gjson.GetBytes(body, "trace_id").String(),
	}
	if e.Message == "" {
		e.Message = http.StatusText(e.Status)
	}
	if e.TraceID == "" {
		e.TraceID = resp.Header().Get(traceIDHeader)
	}
	if run := gjson.GetBytes(body, "run"); run.IsObject() {
		var summary models.SyncRunSummary
		if json.Unmarshal([]byte(run.Raw), &summary) == nil {
			e.Run = &summary
		}
	}
	return e
}

func decode[T any](body []byte, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if err = json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

func (c *Client) Version(ctx context.Context) (string, error) {
	body, _, err := c.do(ctx, http.MethodGet, "/api/version", nil, nil, http.StatusOK)
	return string(body), err
}

func (c *Client) Statuses(ctx context.Context) ([]models.SyncStatus, error) {
	body, _, err := c.do(ctx, http.MethodGet, "/api/sync/status", nil, nil, http.StatusOK)
	return decode[[]models.SyncStatus](body, err)
}

func (c *Client) Status(ctx context.Context, kind models.Kind) (models.SyncStatus, error) {
	body, _, err := c.do(ctx, http.MethodGet, kindPath(kind, "status"), nil, nil, http.StatusOK)
	return decode[models.SyncStatus](body, err)
}

// Pull blocks until the pass finished. A failed pass is returned as an
// *APIError carrying the run.
func (c *Client) Pull(ctx context.Context, kind models.Kind, req models.PullRequest) (models.SyncRunSummary, error) {
	body, _, err := c.do(ctx, http.MethodPost, kindPath(kind, "pull"), req, nil, http.StatusOK)
	return decode[models.SyncRunSummary](body, err)
}

// PullAll returns the runs that started even when some kinds failed; the
// error then describes the failures.
func (c *Client) PullAll(ctx context.Context) ([]models.SyncRunSummary, error) {
	var out struct {
		Runs  []models.SyncRunSummary `json:"runs"`
		Error string                  `json:"error"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(traceIDHeader, c.traceIDs.Generate()).
		SetResult(&out).
		SetError(&out).
		Post("/api/sync/pull")
	if err != nil {
		return nil, fmt.Errorf("POST /api/sync/pull: %w", err)
	}
	if resp.IsError() {
		return out.Runs, &APIError{
			Status:  resp.StatusCode(),
			Message: out.Error,
			TraceID: resp.Header().Get(traceIDHeader),
		}
	}
	return out.Runs, nil
}

func (c *Client) Runs(ctx context.Context, kind models.Kind, limit uint64) ([]models.SyncRunSummary, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.FormatUint(limit, 10))
	}
	body, _, err := c.do(ctx, http.MethodGet, kindPath(kind, "runs"), nil, q, http.StatusOK)
	return decode[[]models.SyncRunSummary](body, err)
}

func (c *Client) Records(ctx context.Context, kind models.Kind, filter models.ListFilter) (json.RawMessage, error) {
	q := url.Values{}
	if filter.State != "" {
		q.Set("state", string(filter.State))
	}
	if filter.ParentExternalID != "" {
		q.Set("group", filter.ParentExternalID)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.FormatUint(filter.Offset, 10))
	}
	body, _, err := c.do(ctx, http.MethodGet, kindPath(kind, "records"), nil, q, http.StatusOK)
	return body, err
}

func (c *Client) Record(ctx context.Context, kind models.Kind, id int64) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodGet, recordPath(kind, id, ""), nil, nil, http.StatusOK)
	return body, err
}

func (c *Client) Create(ctx context.Context, kind models.Kind, req models.CreateRequest) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodPost, kindPath(kind, "records"), req, nil, http.StatusCreated)
	return body, err
}

func (c *Client) Edit(ctx context.Context, kind models.Kind, id int64, patch map[string]json.RawMessage) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodPatch, recordPath(kind, id, ""), patch, nil, http.StatusOK)
	return body, err
}

// Push returns the outcome for both accepted and remotely rejected pushes;
// check PushOutcome.Succeeded. Only requests the server refused are errors.
func (c *Client) Push(ctx context.Context, kind models.Kind, req models.PushRequest) (models.PushOutcome, error) {
	body, status, err := c.do(ctx, http.MethodPost, recordPath(kind, req.ID, "push"), req, nil, http.StatusOK, http.StatusBadGateway)
	if err == nil && status == http.StatusBadGateway && !gjson.GetBytes(body, "sync_state").Exists() {
		return models.PushOutcome{}, &APIError{Status: status, Message: gjson.GetBytes(body, "error").String()}
	}
	return decode[models.PushOutcome](body, err)
}

func kindPath(kind models.Kind, action string) string {
	return "/api/sync/" + url.PathEscape(kind.String()) + "/" + action
}

func recordPath(kind models.Kind, id int64, action string) string {
	p := kindPath(kind, "records") + "/" + strconv.FormatInt(id, 10)
	if action != "" {
		p += "/" + action
	}
	return p
}

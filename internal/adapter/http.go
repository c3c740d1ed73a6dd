// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/config"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	eventsPath = "/sponds"
	groupsPath = "/groups"

	requestIDHeader = "X-Request-ID"

	defaultPageSize = 50
	minRetryWait    = 200 * time.Millisecond
	maxRetryWait    = 2 * time.Second
)

type httpRemoteAdapter struct {
	client   *utils.HTTPClient
	token    string
	pageSize int
	now      func() time.Time

	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs the REST implementation of [RemoteAdapter].
// It normalises the base URL, attaches the session token as a Bearer
// credential and retries transient failures cfg.RetryCount times.
//
// Events are paged with max/offset query parameters. Groups are returned in
// one page. Members are read from the members arrays embedded in groups and
// stamped with their group's id.
func NewHTTPRemoteAdapter(cfg config.Adapter, logger *logger.Logger) (RemoteAdapter, error) {
	baseURL, err := utils.NormalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := utils.NewHTTPClient().WithRetries(cfg.RetryCount, minRetryWait, maxRetryWait)
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &httpRemoteAdapter{
		client:   client,
		token:    cfg.Token,
		pageSize: pageSize,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// FetchPage implements [RemoteAdapter].
func (h *httpRemoteAdapter) FetchPage(ctx context.Context, kind models.Kind, req models.PageRequest) (models.RemotePage, error) {
	switch kind {
	case models.KindEvents:
		return h.fetchEvents(ctx, req)
	case models.KindGroups:
		groups, err := h.fetchGroups(ctx, req.Scope)
		if err != nil {
			return models.RemotePage{}, err
		}
		return models.RemotePage{Records: groups}, nil
	case models.KindMembers:
		return h.fetchMembers(ctx, req.Scope)
	}
	return models.RemotePage{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
}

func (h *httpRemoteAdapter) fetchEvents(ctx context.Context, req models.PageRequest) (models.RemotePage, error) {
	offset := 0
	if req.Cursor != "" {
		var err error
		if offset, err = strconv.Atoi(req.Cursor); err != nil || offset < 0 {
			return models.RemotePage{}, fmt.Errorf("%w: invalid cursor %q", ErrMalformedPage, req.Cursor)
		}
	}
	size := req.PageSize
	if size <= 0 {
		size = h.pageSize
	}

	r, err := h.authedRequest(ctx)
	if err != nil {
		return models.RemotePage{}, err
	}
	r.SetQueryParam("max", strconv.Itoa(size)).
		SetQueryParam("offset", strconv.Itoa(offset))
	if !req.Scope.Empty() {
		r.SetQueryParam("groupId", req.Scope.GroupID)
	}

	resp, err := h.do(r, "GET", eventsPath)
	if err != nil {
		return models.RemotePage{}, err
	}

	records, next, explicit, err := decodePage(resp.Body())
	if err != nil {
		return models.RemotePage{}, err
	}
	if !explicit && len(records) >= size {
		next = strconv.Itoa(offset + len(records))
	}
	return models.RemotePage{Records: records, NextCursor: next}, nil
}

func (h *httpRemoteAdapter) fetchGroups(ctx context.Context, scope models.ScopeFilter) ([]models.RemoteRecord, error) {
	r, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	if !scope.Empty() {
		resp, err := h.do(r, "GET", groupsPath+"/"+url.PathEscape(scope.GroupID))
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(resp.Body()) || !gjson.ParseBytes(resp.Body()).IsObject() {
			return nil, fmt.Errorf("%w: group %s is not an object", ErrMalformedPage, scope.GroupID)
		}
		return []models.RemoteRecord{models.RemoteRecord(resp.Body())}, nil
	}

	resp, err := h.do(r, "GET", groupsPath)
	if err != nil {
		return nil, err
	}
	records, _, _, err := decodePage(resp.Body())
	return records, err
}

// fetchMembers flattens the members of every group in scope. A member of
// several groups appears once per group.
func (h *httpRemoteAdapter) fetchMembers(ctx context.Context, scope models.ScopeFilter) (models.RemotePage, error) {
	groups, err := h.fetchGroups(ctx, scope)
	if err != nil {
		return models.RemotePage{}, err
	}

	var records []models.RemoteRecord
	for _, group := range groups {
		g := gjson.ParseBytes(group)
		groupID := g.Get("id").String()
		for _, m := range g.Get("members").Array() {
			raw := []byte(m.Raw)
			if groupID != "" && !m.Get("groupId").Exists() {
				if raw, err = sjson.SetBytes(raw, "groupId", groupID); err != nil {
					return models.RemotePage{}, fmt.Errorf("%w: member of group %s: %w", ErrMalformedPage, groupID, err)
				}
			}
			records = append(records, models.RemoteRecord(raw))
		}
	}
	return models.RemotePage{Records: records}, nil
}

// CreateRemote implements [RemoteAdapter].
func (h *httpRemoteAdapter) CreateRemote(ctx context.Context, kind models.Kind, scope models.ScopeFilter, payload models.RemotePayload) (string, error) {
	path, err := collectionPath(kind, scope)
	if err != nil {
		return "", err
	}

	r, err := h.authedRequest(ctx)
	if err != nil {
		return "", err
	}
	resp, err := h.do(r.SetHeader("Content-Type", "application/json").SetBody([]byte(payload)), "POST", path)
	if err != nil {
		return "", err
	}

	id := gjson.GetBytes(resp.Body(), "id")
	externalID := id.String()
	if id.Type == gjson.Number {
		externalID = id.Raw
	}
	if externalID == "" {
		return "", fmt.Errorf("%w: POST %s", ErrMissingRemoteID, path)
	}
	return externalID, nil
}

// UpdateRemote implements [RemoteAdapter].
func (h *httpRemoteAdapter) UpdateRemote(ctx context.Context, kind models.Kind, scope models.ScopeFilter, externalID string, payload models.RemotePayload) error {
	path, err := collectionPath(kind, scope)
	if err != nil {
		return err
	}

	r, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	_, err = h.do(r.SetHeader("Content-Type", "application/json").SetBody([]byte(payload)), "PUT", path+"/"+url.PathEscape(externalID))
	return err
}

func collectionPath(kind models.Kind, scope models.ScopeFilter) (string, error) {
	switch kind {
	case models.KindEvents:
		return eventsPath, nil
	case models.KindGroups:
		return groupsPath, nil
	case models.KindMembers:
		if scope.Empty() {
			return "", ErrMissingScope
		}
		return groupsPath + "/" + url.PathEscape(scope.GroupID) + "/members", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
}

// authedRequest refuses to send anything once the session token is known to
// be expired. Requests carry the pull run id, or the API trace id for pushes,
// as X-Request-ID.
func (h *httpRemoteAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	if utils.TokenExpired(h.token, h.now()) {
		return nil, fmt.Errorf("%w: token expired", ErrAuthExpired)
	}

	r := h.client.R().SetContext(ctx)
	if h.token != "" {
		r.SetAuthToken(h.token)
	}
	if id, ok := requestID(ctx); ok {
		r.SetHeader(requestIDHeader, id)
	}
	return r, nil
}

func requestID(ctx context.Context) (string, bool) {
	if id, ok := utils.GetRunIDFromContext(ctx); ok {
		return id, true
	}
	return utils.GetTraceIDFromContext(ctx)
}

func (h *httpRemoteAdapter) do(r *resty.Request, method, path string) (*resty.Response, error) {
	log := logger.FromContext(r.Context())

	resp, err := r.Execute(method, path)
	if err != nil {
		log.Err(err).
			Str("func", "httpRemoteAdapter.do").
			Str("method", method).
			Str("path", path).
			Msg("remote request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRemoteUnavailable, method, path, err)
	}

	log.Debug().
		Str("func", "httpRemoteAdapter.do").
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("remote request done")

	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// decodePage accepts a bare JSON array or {"items": [...], "next_cursor": ""}.
// explicit reports whether the body carried its own cursor.
func decodePage(body []byte) (records []models.RemoteRecord, next string, explicit bool, err error) {
	if !gjson.ValidBytes(body) {
		return nil, "", false, fmt.Errorf("%w: invalid json", ErrMalformedPage)
	}

	page := gjson.ParseBytes(body)
	items := page
	if page.IsObject() {
		items = page.Get("items")
		explicit = true
		next = page.Get("next_cursor").String()
	}
	if !items.IsArray() {
		return nil, "", false, fmt.Errorf("%w: expected an array of records", ErrMalformedPage)
	}

	for _, item := range items.Array() {
		records = append(records, models.RemoteRecord(item.Raw))
	}
	return records, next, explicit, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/models"
)

// memRepo is an in-memory EntityRepository. Rows are stored as JSON so
// callers never share memory with the store.
type memRepo[T models.Entity] struct {
	mu        sync.Mutex
	newEntity func() T
	rows      map[int64][]byte
	byExt     map[string]int64
	nextID    int64

	// upsertErr fails every Upsert when set.
	upsertErr error
	// beforeModify runs inside Modify before the record is loaded.
	beforeModify func(id int64)
}

func newMemRepo[T models.Entity](newEntity func() T) *memRepo[T] {
	return &memRepo[T]{
		newEntity: newEntity,
		rows:      make(map[int64][]byte),
		byExt:     make(map[string]int64),
	}
}

func (r *memRepo[T]) load(id int64) (T, error) {
	var zero T
	b, ok := r.rows[id]
	if !ok {
		return zero, store.ErrEntityNotFound
	}
	e := r.newEntity()
	if err := json.Unmarshal(b, e); err != nil {
		return zero, err
	}
	return e, nil
}

func (r *memRepo[T]) save(e T) error {
	m := e.Meta()
	if ext := m.ExternalIDValue(); ext != "" {
		if other, ok := r.byExt[ext]; ok && other != m.ID {
			return fmt.Errorf("%w: %s", store.ErrDuplicateExternalID, ext)
		}
	}
	if old, err := r.load(m.ID); err == nil {
		delete(r.byExt, old.Meta().ExternalIDValue())
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	r.rows[m.ID] = b
	if ext := m.ExternalIDValue(); ext != "" {
		r.byExt[ext] = m.ID
	}
	return nil
}

// put seeds a record and returns its id.
func (r *memRepo[T]) put(e T) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.Meta().ID = r.nextID
	if err := r.save(e); err != nil {
		panic(err)
	}
	return r.nextID
}

func (r *memRepo[T]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *memRepo[T]) GetByID(_ context.Context, id int64) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(id)
}

func (r *memRepo[T]) GetByExternalID(_ context.Context, externalID string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byExt[externalID]
	if !ok {
		var zero T
		return zero, store.ErrEntityNotFound
	}
	return r.load(id)
}

func (r *memRepo[T]) List(_ context.Context, filter models.ListFilter) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0)
	for _, id := range ids {
		e, err := r.load(id)
		if err != nil {
			return nil, err
		}
		m := e.Meta()
		if filter.State != "" && m.SyncState != filter.State {
			continue
		}
		if filter.ParentExternalID != "" && (m.ParentExternalID == nil || *m.ParentExternalID != filter.ParentExternalID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memRepo[T]) Create(_ context.Context, entity T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entity.Meta().ID = r.nextID
	if err := r.save(entity); err != nil {
		var zero T
		return zero, err
	}
	return r.load(entity.Meta().ID)
}

func (r *memRepo[T]) Upsert(_ context.Context, externalID string, apply store.UpsertFunc[T]) (T, bool, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return zero, false, r.upsertErr
	}

	existing := r.newEntity()
	id, found := r.byExt[externalID]
	if found {
		var err error
		if existing, err = r.load(id); err != nil {
			return zero, false, err
		}
	}
	next, err := apply(existing, found)
	if err != nil {
		return zero, false, err
	}
	next.Meta().ExternalID = &externalID
	if found {
		next.Meta().ID = id
	} else {
		r.nextID++
		next.Meta().ID = r.nextID
	}
	if err = r.save(next); err != nil {
		return zero, false, err
	}
	stored, err := r.load(next.Meta().ID)
	return stored, !found, err
}

func (r *memRepo[T]) Modify(_ context.Context, id int64, fn store.ModifyFunc[T]) (T, error) {
	var zero T
	if r.beforeModify != nil {
		r.beforeModify(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, err := r.load(id)
	if err != nil {
		return zero, err
	}
	next, err := fn(current)
	if err != nil {
		return zero, err
	}
	next.Meta().ID = id
	if err = r.save(next); err != nil {
		return zero, err
	}
	return r.load(id)
}

func (r *memRepo[T]) Adopt(_ context.Context, id int64, externalID string, fn store.AdoptFunc[T]) (T, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()
	current, err := r.load(id)
	if err != nil {
		return zero, err
	}
	var pulled T
	pulledID, found := r.byExt[externalID]
	if found && pulledID != id {
		if pulled, err = r.load(pulledID); err != nil {
			return zero, err
		}
	} else {
		found = false
	}
	next, err := fn(current, pulled, found)
	if err != nil {
		return zero, err
	}
	if found {
		delete(r.rows, pulledID)
		delete(r.byExt, externalID)
	}
	next.Meta().ID = id
	next.Meta().ExternalID = &externalID
	if err = r.save(next); err != nil {
		return zero, err
	}
	return r.load(id)
}

func (r *memRepo[T]) CountNotSyncedSince(_ context.Context, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id := range r.rows {
		e, err := r.load(id)
		if err != nil {
			return 0, err
		}
		m := e.Meta()
		if m.ExternalID == nil || m.SyncState == models.StateLocalOnly {
			continue
		}
		if m.LastSyncedAt == nil || m.LastSyncedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// memRunRepo is an in-memory SyncRunRepository.
type memRunRepo struct {
	mu   sync.Mutex
	runs map[string]models.SyncRun

	createErr error
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{runs: make(map[string]models.SyncRun)}
}

func (r *memRunRepo) Create(_ context.Context, run models.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.runs[run.ID] = run
	return nil
}

func (r *memRunRepo) Finalize(_ context.Context, run models.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.runs[run.ID]
	if !ok || stored.EndedAt != nil {
		return store.ErrSyncRunFinalized
	}
	r.runs[run.ID] = run
	return nil
}

func (r *memRunRepo) sorted(kind models.Kind) []models.SyncRun {
	out := make([]models.SyncRun, 0)
	for _, run := range r.runs {
		if run.Kind == kind {
			out = append(out, run)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *memRunRepo) Latest(_ context.Context, kind models.Kind) (models.SyncRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	runs := r.sorted(kind)
	if len(runs) == 0 {
		return models.SyncRun{}, store.ErrSyncRunNotFound
	}
	return runs[0], nil
}

func (r *memRunRepo) List(_ context.Context, kind models.Kind, limit uint64) ([]models.SyncRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	runs := r.sorted(kind)
	if limit > 0 && uint64(len(runs)) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (r *memRunRepo) AbandonRunning(_ context.Context, endedAt time.Time, reason string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, run := range r.runs {
		if run.EndedAt != nil {
			continue
		}
		run.Status = models.RunFailed
		run.EndedAt = &endedAt
		run.FatalError = reason
		r.runs[id] = run
		n++
	}
	return n, nil
}

func (r *memRunRepo) get(id string) models.SyncRun {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs[id]
}

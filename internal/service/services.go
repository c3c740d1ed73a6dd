// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/Paalmessenlien/spondadmin/internal/adapter"
	"github.com/Paalmessenlien/spondadmin/internal/config"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/mapper"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/models"
)

type Services struct {
	History      *HistoryRecorder
	Orchestrator Orchestrator
}

// NewServices builds one pipeline per entity kind on top of storages and
// the remote adapter. Groups come first so that scheduled member and event
// passes find their parents.
func NewServices(storages *store.Storages, remote adapter.RemoteAdapter, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	history := NewHistoryRecorder(storages.SyncRuns, logger)
	pageSize := cfg.Adapter.PageSize

	syncers := []KindSyncer{
		NewKindSyncer[*models.Group](mapper.NewGroupMapper(), storages.Groups, remote, history, pageSize, logger),
		NewKindSyncer[*models.Member](mapper.NewMemberMapper(), storages.Members, remote, history, pageSize, logger),
		NewKindSyncer[*models.Event](mapper.NewEventMapper(), storages.Events, remote, history, pageSize, logger),
	}

	return &Services{
		History:      history,
		Orchestrator: NewOrchestrator(syncers, history, cfg.Workers, logger),
	}
}

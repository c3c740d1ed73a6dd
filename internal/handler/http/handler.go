// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/Paalmessenlien/spondadmin/internal/config"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/service"
	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/Paalmessenlien/spondadmin/internal/validators"
)

// Handler serves the trigger, status and record API on top of the
// orchestrator.
type Handler struct {
	orchestrator service.Orchestrator
	validator    validators.Validator
	traceIDs     *utils.UUIDGenerator
	version      string
	apiToken     string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, version string, logger *logger.Logger) *Handler {
	logger.Info().Bool("auth", cfg.APIToken != "").Msg("http handler created")
	return &Handler{
		orchestrator: services.Orchestrator,
		validator:    validators.NewRequestValidator(),
		traceIDs:     utils.NewUUIDGenerator(),
		version:      version,
		apiToken:     cfg.APIToken,
		logger:       logger,
	}
}

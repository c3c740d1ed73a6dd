// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/config"
	"github.com/Paalmessenlien/spondadmin/internal/handler"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackground struct {
	startErr error
	started  atomic.Bool
	stopped  atomic.Bool
}

func (b *fakeBackground) Start(context.Context) error {
	b.started.Store(true)
	return b.startErr
}

func (b *fakeBackground) Stop(context.Context) error {
	b.stopped.Store(true)
	return nil
}

func newTestServer(t *testing.T, bg Background) *server {
	t.Helper()
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second}
	handlers, err := handler.NewHandlers(&service.Services{}, cfg, "9.9.9", logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, bg, cfg, logger.Nop())
	require.NoError(t, err)
	return srv.(*server)
}

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, &fakeBackground{}, config.Server{HTTPAddress: ":0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_ServesUntilCancelled(t *testing.T) {
	bg := &fakeBackground{}
	srv := newTestServer(t, bg)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.run(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/version"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "9.9.9"
	}, 2*time.Second, 20*time.Millisecond)
	assert.True(t, bg.started.Load())

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, bg.stopped.Load())
}

func TestServer_WorkerStartFailure(t *testing.T) {
	boom := errors.New("boom")
	bg := &fakeBackground{startErr: boom}
	srv := newTestServer(t, bg)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	err = srv.run(context.Background(), ln)
	assert.ErrorIs(t, err, boom)
	assert.False(t, bg.stopped.Load())
}

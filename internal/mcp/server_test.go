package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/mcp-go/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
)

func TestNewServer_RequiresApp(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.Error(t, err)

	srv, err := NewServer(&cli.App{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestServe_RequiresConfig(t *testing.T) {
	err := Serve(context.Background(), nil, &cli.App{}, nil)
	assert.Error(t, err)
}

func TestMCPLogger_ForwardsFields(t *testing.T) {
	var buf bytes.Buffer
	l := mcpLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Info("tool called", middleware.Field{Key: "tool", Value: "task.create"})
	l.Warn("slow call", middleware.Field{Key: "ms", Value: 1200})

	out := buf.String()
	assert.Contains(t, out, "tool=task.create")
	assert.Contains(t, out, "ms=1200")
	assert.Empty(t, fieldsToArgs(nil))
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "source and comment_id",
			setupCtx: func() context.Context {
				ctx := WithSource(context.Background(), "thread.yaml")
				return WithCommentID(ctx, "c1")
			},
			wantKeys: []string{"source", "comment_id"},
		},
		{
			name: "only source",
			setupCtx: func() context.Context {
				return WithSource(context.Background(), "thread.yaml")
			},
			wantKeys:  []string{"source"},
			wantEmpty: []string{"comment_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"source", "comment_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var logEntry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

			for _, key := range tt.wantKeys {
				assert.Contains(t, logEntry, key)
			}
			for _, key := range tt.wantEmpty {
				assert.NotContains(t, logEntry, key)
			}
		})
	}
}

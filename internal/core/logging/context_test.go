package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetSource(ctx))
	assert.Empty(t, GetCommentID(ctx))

	ctx = WithSource(ctx, "/tmp/thread.json")
	ctx = WithCommentID(ctx, "c-42")

	assert.Equal(t, "/tmp/thread.json", GetSource(ctx))
	assert.Equal(t, "c-42", GetCommentID(ctx))
}

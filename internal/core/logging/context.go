package logging

import "context"

type contextKey string

const (
	sourceKey    contextKey = "source"
	commentIDKey contextKey = "comment_id"
)

// WithSource adds the comment file path to the context.
func WithSource(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, sourceKey, path)
}

// WithCommentID adds a comment ID to the context.
func WithCommentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, commentIDKey, id)
}

// GetSource retrieves the comment file path from the context.
// Returns empty string if not present.
func GetSource(ctx context.Context) string {
	if p, ok := ctx.Value(sourceKey).(string); ok {
		return p
	}
	return ""
}

// GetCommentID retrieves the comment ID from the context.
// Returns empty string if not present.
func GetCommentID(ctx context.Context) string {
	if id, ok := ctx.Value(commentIDKey).(string); ok {
		return id
	}
	return ""
}

package log

import (
	"context"
	"log/slog"

	slogctx "github.com/veqryn/slog-context"
)

// InjectInvocation tags every record logged during one command run.
func InjectInvocation(ctx context.Context, command, invocationID string) context.Context {
	return slogctx.With(ctx,
		slog.String("invocationId", invocationID),
		slog.String("command", command),
	)
}

func InjectItem(ctx context.Context, path string) context.Context {
	return slogctx.With(ctx, slog.String("itemPath", path))
}

func InjectIdentity(ctx context.Context, identity string) context.Context {
	return slogctx.With(ctx, slog.String("identity", identity))
}

func InjectSOAPAction(ctx context.Context, action string) context.Context {
	return slogctx.With(ctx, slog.String("soapAction", action))
}

func ErrorAttr(err error) slog.Attr {
	return slog.Attr{
		Key:   slogctx.ErrKey,
		Value: slog.StringValue(err.Error()),
	}
}

func Debug(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelDebug, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelWarn, msg, args...)
}

func Info(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelInfo, msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...slog.Attr) {
	args = append(args, slogctx.Err(err))

	slogctx.LogAttrs(ctx, slog.LevelError, msg, args...)
}

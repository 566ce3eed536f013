package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Fields are the per-operation values ContextHook copies onto log events.
type Fields struct {
	TimerID string
	Action  string
}

type fieldsKey struct{}

// FieldsFrom returns the fields carried by ctx, zero if none.
func FieldsFrom(ctx context.Context) Fields {
	if ctx == nil {
		return Fields{}
	}
	f, _ := ctx.Value(fieldsKey{}).(Fields)
	return f
}

func withFields(ctx context.Context, update func(*Fields)) context.Context {
	f := FieldsFrom(ctx)
	update(&f)
	return context.WithValue(ctx, fieldsKey{}, f)
}

// WithTimerID tags ctx with the timer an operation applies to.
func WithTimerID(ctx context.Context, id string) context.Context {
	return withFields(ctx, func(f *Fields) { f.TimerID = id })
}

// WithAction tags ctx with the store action being applied, e.g. "pause".
func WithAction(ctx context.Context, action string) context.Context {
	return withFields(ctx, func(f *Fields) { f.Action = action })
}

// ContextHook adds timer_id and action to events logged with .Ctx(ctx).
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	f := FieldsFrom(e.GetCtx())
	if f.TimerID != "" {
		e.Str("timer_id", f.TimerID)
	}
	if f.Action != "" {
		e.Str("action", f.Action)
	}
}

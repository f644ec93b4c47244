//go:build !dev

package view

import "log/slog"

// callInitialize invokes Initialize in production mode.
// Panics are recovered and logged so one broken view does not take the
// application down.
func (t *Template) callInitialize(i Initializer) {
	defer func() {
		if rec := recover(); rec != nil {
			t.Logger().Error("initialize panicked", slog.String("sID", t.sID), slog.Any("panic", rec))
		}
	}()
	i.Initialize()
}

// callOnRemove invokes OnRemove in production mode, recovering panics.
func (t *Template) callOnRemove(c Cleaner) {
	defer func() {
		if rec := recover(); rec != nil {
			t.Logger().Error("remove hook panicked", slog.String("sID", t.sID), slog.Any("panic", rec))
		}
	}()
	c.OnRemove()
}

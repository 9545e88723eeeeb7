package app

import (
	"context"
	"errors"

	"github.com/atomic-arch/ghusers/pkg/reachability"
)

// Watch logs every connection type transition until ctx is done.
func (a *App) Watch(ctx context.Context, notify func(reachability.ConnectionType)) error {
	if a.monitor == nil {
		return errors.New("reachability checks are disabled")
	}

	a.monitor.OnChange(func(ct reachability.ConnectionType) {
		a.log.InfoObj("connection changed", "reachability", map[string]any{
			"connection": ct.String(),
			"connected":  a.monitor.IsConnected(),
		})
		if notify != nil {
			notify(ct)
		}
	})
	defer a.monitor.OnChange(nil)

	a.log.InfoObj("watching connectivity", "reachability", map[string]any{
		"connection": a.monitor.ConnectionType().String(),
		"connected":  a.monitor.IsConnected(),
	})

	<-ctx.Done()
	return nil
}

package plugin

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the Plugin and drains in-flight calls on shutdown.
var Module = fx.Module("plugin",
	fx.Provide(
		New,
		func(p *Plugin) Auth { return p },
	),
	fx.Invoke(func(lc fx.Lifecycle, p *Plugin) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				done := make(chan struct{})
				go func() {
					p.Wait()
					close(done)
				}()

				select {
				case <-done:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		})
	}),
)

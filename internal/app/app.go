// Package app wires the journal's object graph: configuration, router,
// message bus, platform handles, sinks and producers.
package app

import (
	"log/slog"
	"os"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"

	"github.com/wardenbot/warden/internal/alias"
	"github.com/wardenbot/warden/internal/config"
	"github.com/wardenbot/warden/internal/journal"
	"github.com/wardenbot/warden/internal/platform"
	"github.com/wardenbot/warden/internal/pubsub"
	"github.com/wardenbot/warden/internal/sink"
	"github.com/wardenbot/warden/internal/storage"
)

// New builds the dependency injector for the application. The tracer ends up
// on the message bus so relayed journal events are observable; a nil tracer
// disables bus tracing.
func New(cfg *config.Config, tracer trace.Tracer) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)

	do.Provide(injector, func(i do.Injector) (*journal.Router, error) {
		return journal.NewRouter(slog.Default()), nil
	})

	do.Provide(injector, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewTracedWatermillBridge(tracer), nil
	})

	do.Provide(injector, func(i do.Injector) (platform.Guild, error) {
		c := do.MustInvoke[*config.Config](i)
		return platform.NewStaticGuild(c.GuildID, c.GuildName, c.LogChannelID), nil
	})

	do.Provide(injector, func(i do.Injector) (storage.Store, error) {
		c := do.MustInvoke[*config.Config](i)
		fs := afero.NewBasePathFs(afero.NewOsFs(), c.DataDir)
		return storage.NewAferoStore(fs), nil
	})

	do.Provide(injector, func(i do.Injector) (*alias.Tracker, error) {
		router := do.MustInvoke[*journal.Router](i)
		avatars := do.MustInvoke[storage.Store](i)
		return alias.NewTracker(router.Broadcaster("/alias"), alias.NewMemoryStore(), avatars, nil), nil
	})

	return injector
}

// RegisterSinks registers the reference sinks against the router per the
// configuration. A registration failure is fatal to startup.
func RegisterSinks(injector do.Injector) error {
	cfg := do.MustInvoke[*config.Config](injector)
	router := do.MustInvoke[*journal.Router](injector)
	bridge := do.MustInvoke[*pubsub.WatermillBridge](injector)

	channel := platform.NewConsoleChannel(cfg.LogChannelID, os.Stdout)
	operator := platform.NewConsoleUser(cfg.OperatorID, os.Stdout)

	listeners := []journal.Listener{
		sink.NewChannelOutput(cfg.JournalPath, true, channel, nil),
		sink.NewDirectMessage(cfg.JournalPath, true, operator),
		sink.NewRelay(cfg.JournalPath, true, bridge),
	}
	for _, l := range listeners {
		if err := router.Register(l); err != nil {
			return err
		}
	}
	return nil
}

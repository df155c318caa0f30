// Package bootstrap provides dependency injection wiring using Google Wire.
// It isolates all dependency construction from the main entry point,
// allowing for a minimal main.go and better testability.
package bootstrap

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kodflow/topiccore/internal/application/pubsub"
	domainconfig "github.com/kodflow/topiccore/internal/domain/config"
	domainlogging "github.com/kodflow/topiccore/internal/domain/logging"
	"github.com/kodflow/topiccore/internal/domain/regevent"
	infraevents "github.com/kodflow/topiccore/internal/infrastructure/observability/events"
	"github.com/kodflow/topiccore/internal/infrastructure/persistence/registrylog"
)

var (
	// version is the application version, set at build time via ldflags.
	version string = "dev"
	// configPath is the path to the YAML configuration file.
	configPath string = ""
)

// App holds all application dependencies injected by Wire. It is the root
// object of the dependency graph.
type App struct {
	// Manager is the process-wide topic registry.
	Manager *pubsub.TopicManager
	// Resolver resolves topic names against the node namespace; callers
	// building their own Publisher/Subscriber handles (rather than
	// acquiring impls from Manager directly, as WireDemoTopic does) pass
	// it to pubsub.NewPublisher/pubsub.NewSubscriber.
	Resolver pubsub.NameResolver
	// Logger is the node's event logger.
	Logger domainlogging.Logger
	// Config holds the loaded node configuration.
	Config domainconfig.Config
	// Bus is the registration-event bus RegistrationListener publishes to;
	// exposed so callers (such as LogRegistrationEvents) can
	// subscribe their own filtered views instead of polling the manager.
	Bus *infraevents.Bus
	// registry is the registration-event audit log, nil when disabled.
	registry *registrylog.Store
	// Cleanup releases every resource the app opened.
	Cleanup func()
}

// NewApp assembles the App from its wired dependencies.
//
// Params:
//   - manager: the process-wide topic manager.
//   - resolver: the node's name resolver.
//   - logger: the node's event logger.
//   - cfg: the loaded node configuration.
//   - bus: the registration-event bus RegistrationListener publishes to.
//   - registry: the registration-event audit log, nil if disabled.
//
// Returns:
//   - *App: the assembled application.
func NewApp(manager *pubsub.TopicManager, resolver pubsub.NameResolver, logger domainlogging.Logger, cfg domainconfig.Config, bus *infraevents.Bus, registry *registrylog.Store) *App {
	app := &App{
		Manager:  manager,
		Resolver: resolver,
		Logger:   logger,
		Config:   cfg,
		Bus:      bus,
		registry: registry,
	}
	app.Cleanup = func() {
		manager.RemoveAll()
		if registry != nil {
			_ = registry.Close()
		}
		_ = logger.Close()
	}
	return app
}

// LogRegistrationEvents subscribes a filtered view of the registration bus
// (topic added/removed only) and logs each event until stopped, giving an
// operator tailing topicd's output the same lifecycle visibility
// registrylog persists, without opening the audit log file. The returned
// stop function releases the subscription; callers typically defer it
// alongside app.Cleanup.
func (a *App) LogRegistrationEvents() func() {
	events, stop := a.Bus.SubscribeFiltered(regevent.FilterByType(regevent.TypeAdded, regevent.TypeRemoved))
	go func() {
		for event := range events {
			a.Logger.Info("registration", event.Type.String(), "topic registration changed", map[string]any{
				"topic":        event.TopicName,
				"message_type": event.MessageTypeName,
				"direction":    event.Direction,
			})
		}
	}()
	return stop
}

// Run is the main entry point called from cmd/topicd/main.go. It parses
// flags, initializes the application via Wire, and blocks until a
// shutdown signal arrives.
//
// Returns:
//   - int: exit code (0 for success, 1 for error).
func Run() int {
	fs := flag.NewFlagSet("topicd", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "show version and exit")
	fs.StringVar(&configPath, "config", "", "path to node YAML config file")
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("topiccore %s\n", version)
		return 0
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// RunWithConfig executes the main application logic with a specified
// config path. Exported for testing purposes.
//
// Params:
//   - cfgPath: the path to the configuration file.
//
// Returns:
//   - error: nil on success, error on failure.
func RunWithConfig(cfgPath string) error {
	return run(cfgPath)
}

// run wires the application and blocks until a termination signal.
//
// Params:
//   - cfgPath: the path to the configuration file.
//
// Returns:
//   - error: nil on success, error on failure.
func run(cfgPath string) error {
	app, err := InitializeApp(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Cleanup()
	defer app.LogRegistrationEvents()()

	app.WireDemoTopic()
	app.Logger.Info("", "node_started", "Topic manager started", map[string]any{"version": version})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	return WaitForSignals(ctx, cancel, sigCh, app)
}

// WaitForSignals blocks until a termination signal arrives or ctx is
// cancelled, then tears the app down. Exported for testing purposes.
//
// Params:
//   - ctx: the context for cancellation.
//   - cancel: the cancel function for the context.
//   - sigCh: the channel receiving OS signals.
//   - app: the application to shut down.
//
// Returns:
//   - error: nil on success, error on failure.
func WaitForSignals(ctx context.Context, cancel context.CancelFunc, sigCh <-chan os.Signal, app *App) error {
	select {
	case <-sigCh:
		cancel()
	case <-ctx.Done():
	}
	app.Logger.Info("", "node_stopping", "Topic manager shutting down", nil)
	return nil
}

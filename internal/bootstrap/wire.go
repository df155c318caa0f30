//go:build wireinject

package bootstrap

import (
	"github.com/google/wire"

	appconfig "github.com/kodflow/topiccore/internal/application/config"
	"github.com/kodflow/topiccore/internal/application/pubsub"
	infraevents "github.com/kodflow/topiccore/internal/infrastructure/observability/events"
	infraconfig "github.com/kodflow/topiccore/internal/infrastructure/persistence/config/yaml"
	"github.com/kodflow/topiccore/internal/infrastructure/resolution"
	"github.com/kodflow/topiccore/internal/infrastructure/serialization"
)

// InitializeApp creates the application with all dependencies wired. This
// function is the injector `go generate`'s wire invocation expands into
// wire_gen.go; it is never compiled directly (build tag above) — the
// checked-in wire_gen.go is what cmd/topicd and cmd/topicinfo actually
// link against.
//
// Params:
//   - configPath: the path to the YAML node configuration file.
//
// Returns:
//   - *App: the fully wired application.
//   - error: any error during dependency construction.
func InitializeApp(configPath string) (*App, error) {
	wire.Build(
		// Infrastructure: node configuration loader.
		infraconfig.New,
		wire.Bind(new(appconfig.Loader), new(*infraconfig.Loader)),
		LoadConfig,

		// Infrastructure: logging.
		ProvideLogger,

		// Infrastructure: registration-event bus, audit log, and listener.
		infraevents.NewBus,
		ProvideRegistryLog,
		infraevents.NewRegistrationListener,
		wire.Bind(new(pubsub.RegistrationListener), new(*infraevents.RegistrationListener)),

		// Infrastructure: name resolver.
		ProvideNameResolver,
		wire.Bind(new(pubsub.NameResolver), new(*resolution.Resolver)),

		// Infrastructure: message serializer.
		serialization.New,
		wire.Bind(new(pubsub.Serializer), new(*serialization.GobSerializer)),

		// Application: the process-wide topic manager.
		pubsub.NewTopicManager,

		// Bootstrap: final App struct.
		NewApp,
	)
	return nil, nil
}

// InitializeTUIApp is InitializeApp's counterpart for callers that render
// their own terminal UI: it wires ProvideLoggerWithoutConsole instead of
// ProvideLogger so log output never interleaves with the TUI's own
// rendering.
//
// Params:
//   - configPath: the path to the YAML node configuration file.
//
// Returns:
//   - *App: the fully wired application.
//   - error: any error during dependency construction.
func InitializeTUIApp(configPath string) (*App, error) {
	wire.Build(
		infraconfig.New,
		wire.Bind(new(appconfig.Loader), new(*infraconfig.Loader)),
		LoadConfig,

		ProvideLoggerWithoutConsole,

		infraevents.NewBus,
		ProvideRegistryLog,
		infraevents.NewRegistrationListener,
		wire.Bind(new(pubsub.RegistrationListener), new(*infraevents.RegistrationListener)),

		ProvideNameResolver,
		wire.Bind(new(pubsub.NameResolver), new(*resolution.Resolver)),

		serialization.New,
		wire.Bind(new(pubsub.Serializer), new(*serialization.GobSerializer)),

		pubsub.NewTopicManager,

		NewApp,
	)
	return nil, nil
}

package bootstrap_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodflow/topiccore/internal/bootstrap"
	"github.com/kodflow/topiccore/internal/domain/topic"
)

// TestInitializeApp_EmptyConfigPath_AssemblesWithDefaults verifies the
// hand-assembled injector builds a usable App from config.Default() when
// no config file is given, and that Cleanup tears it down without error.
func TestInitializeApp_EmptyConfigPath_AssemblesWithDefaults(t *testing.T) {
	// Not run in parallel: config.Default()'s LogDir ("./log") is a
	// relative, process-wide path shared by every caller of InitializeApp.
	t.Cleanup(func() { _ = os.RemoveAll("log") })

	app, err := bootstrap.InitializeApp("")
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NotNil(t, app.Manager)
	assert.NotNil(t, app.Resolver)
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.Bus)
	assert.Equal(t, "/", app.Config.Namespace)

	assert.NotPanics(t, app.Cleanup)
}

// TestApp_LogRegistrationEvents_LogsAddAndRemove verifies the filtered bus
// subscription fires for a topic's added/removed lifecycle and that the
// returned stop function tears the subscription back down.
func TestApp_LogRegistrationEvents_LogsAddAndRemove(t *testing.T) {
	t.Cleanup(func() { _ = os.RemoveAll("log") })

	app, err := bootstrap.InitializeTUIApp("")
	require.NoError(t, err)
	defer app.Cleanup()

	stop := app.LogRegistrationEvents()
	defer stop()

	msgType := topic.MessageType{Name: "std_msgs/String", MD5Sum: "*"}
	app.Manager.AcquirePublisher("/chatter", msgType, true, nil)
	app.Manager.ReleasePublisher("/chatter")
}

// TestInitializeApp_MissingConfigFile_ReturnsError verifies a non-empty
// but unreadable configPath surfaces an error rather than silently
// falling back to defaults.
func TestInitializeApp_MissingConfigFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := bootstrap.InitializeApp("/nonexistent/path/to/node.yaml")
	assert.Error(t, err)
}

// TestInitializeTUIApp_AssemblesWithSilentLogger verifies the TUI variant
// builds the same graph as InitializeApp but without a console writer.
func TestInitializeTUIApp_AssemblesWithSilentLogger(t *testing.T) {
	t.Cleanup(func() { _ = os.RemoveAll("log") })

	app, err := bootstrap.InitializeTUIApp("")
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NotNil(t, app.Manager)
	assert.NotNil(t, app.Logger)
	assert.NotPanics(t, app.Cleanup)
}

package bootstrap

import (
	"time"

	"github.com/kodflow/topiccore/internal/domain/shared"
	"github.com/kodflow/topiccore/internal/domain/topic"
	"github.com/kodflow/topiccore/internal/infrastructure/serialization"
	"github.com/kodflow/topiccore/internal/infrastructure/transport/loopback"
)

// demoTopicName is the name of the built-in publisher/subscriber pair
// wired over a loopback transport for cmd/topicd and cmd/topicinfo to
// have live stats to show without a real wire transport.
const demoTopicName string = "/topiccore/heartbeat"

// demoInterval is how often the demo publisher emits a heartbeat.
var demoInterval shared.Duration = shared.Seconds(1)

// demoMessageType is the descriptor shared by the demo publisher and
// subscriber; they must acquire the same topic impl.
var demoMessageType topic.MessageType = topic.MessageType{Name: "std_msgs/String", MD5Sum: "*"}

// WireDemoTopic acquires a publisher and subscriber on demoTopicName,
// connects them with an in-process loopback.Transport pair, and starts a
// goroutine publishing a heartbeat message on demoInterval. It stops when
// app.Cleanup tears the manager down and the publish loop observes the
// closed topic.
func (a *App) WireDemoTopic() {
	pub := a.Manager.AcquirePublisher(demoTopicName, demoMessageType, true, nil)
	sub := a.Manager.AcquireSubscriber(demoTopicName, demoMessageType)

	out, in := loopback.NewPair("topicinfo-demo-sub", "topicinfo-demo-pub")
	pubConn := topic.NewConnection(out)
	subConn := topic.NewConnection(in)

	in.SetOnReceive(func(data []byte) {
		_, message, err := serialization.Deserialize(data)
		if err != nil {
			a.Logger.Debug("demo", "deserialize.error", "dropping malformed heartbeat payload", map[string]any{"error": err.Error()})
			return
		}
		sub.ReceiveCallback(subConn, []any{message})
	})

	if err := pub.AddConnection(pubConn); err != nil {
		a.Logger.Warn("demo", "connection.add_error", "failed to admit demo subscriber connection", map[string]any{"error": err.Error()})
	}
	sub.Connections().Add(subConn)

	go a.runDemoHeartbeat(pub)
}

// runDemoHeartbeat publishes an incrementing heartbeat message until the
// demo publisher is closed (on app teardown).
func (a *App) runDemoHeartbeat(pub interface {
	Publish(message any, override []*topic.Connection) (bool, error)
	Closed() bool
}) {
	ticker := time.NewTicker(demoInterval.Duration())
	defer ticker.Stop()
	var n uint64
	for range ticker.C {
		if pub.Closed() {
			return
		}
		n++
		if _, err := pub.Publish("heartbeat", nil); err != nil {
			a.Logger.Debug("demo", "publish.error", "demo heartbeat publish failed", map[string]any{"error": err.Error(), "n": n})
		}
	}
}

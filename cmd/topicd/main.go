// Package main provides the entry point for topicd, the topic-core
// node process. topicd hosts the process-wide TopicManager and keeps it
// alive until a termination signal arrives.
package main

import (
	"os"

	"github.com/kodflow/topiccore/internal/bootstrap"
)

func main() {
	os.Exit(bootstrap.Run())
}

// Package telemetry holds the small pieces of OTel plumbing shared by the
// tracer bootstrap in telemetry/trace and the span-tagging call sites in
// nodegraph, executor and blockcache.
package telemetry

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	ServiceName      = "signalgraph-engine"
	ServiceVersion   = "v0.1.0"
	ServiceNamespace = "signalgraph"
	InstrumentName   = "signalgraph.engine"
)

// NewPassSpanName names the span wrapping one process_subgraph pass over a sink node.
func NewPassSpanName(sinkNodeName string) string {
	if sinkNodeName == "" {
		return "process_subgraph"
	}
	return "process_subgraph " + sinkNodeName
}

// NewJobSpanName names the span wrapping one executor Runnable.Run call.
func NewJobSpanName(jobName string) string {
	if jobName == "" {
		return "run_job"
	}
	return "run_job " + jobName
}

// NewCacheSpanName names the span wrapping one cache provider round trip.
func NewCacheSpanName(op, path string) string {
	if path == "" {
		return op
	}
	return op + " " + path
}

// NewConn creates a gRPC connection to the OpenTelemetry collector.
func NewConn(endpoint string) (*grpc.ClientConn, error) {
	// Insecure transport; TLS is recommended in production deployments.
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}
	return conn, nil
}

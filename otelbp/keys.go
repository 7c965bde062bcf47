// Package otelbp provides OpenTelemetry attribute helpers for
// blockpack instrumentation.
package otelbp

import (
	"go.opentelemetry.io/otel/attribute"
)

// Name is the instrumentation name.
const Name = "github.com/go-faster/blockpack"

const (
	RunIDKey         = attribute.Key("blockpack.run.id")
	MethodKey        = attribute.Key("blockpack.codec.method")
	DigestKindKey    = attribute.Key("blockpack.digest.kind")
	ChunkCountKey    = attribute.Key("blockpack.chunks")
	OriginalBytesKey = attribute.Key("blockpack.bytes.original")
	StoredBytesKey   = attribute.Key("blockpack.bytes.stored")
)

// RunID attribute.
func RunID(v string) attribute.KeyValue {
	return attribute.KeyValue{
		Key:   RunIDKey,
		Value: attribute.StringValue(v),
	}
}

// Method attribute.
func Method(v string) attribute.KeyValue {
	return attribute.KeyValue{
		Key:   MethodKey,
		Value: attribute.StringValue(v),
	}
}

// DigestKind attribute.
func DigestKind(v string) attribute.KeyValue {
	return attribute.KeyValue{
		Key:   DigestKindKey,
		Value: attribute.StringValue(v),
	}
}

// ChunkCount attribute.
func ChunkCount(v int) attribute.KeyValue {
	return attribute.KeyValue{
		Key:   ChunkCountKey,
		Value: attribute.IntValue(v),
	}
}

// OriginalBytes attribute.
func OriginalBytes(v int64) attribute.KeyValue {
	return attribute.KeyValue{
		Key:   OriginalBytesKey,
		Value: attribute.Int64Value(v),
	}
}

// StoredBytes attribute.
func StoredBytes(v int64) attribute.KeyValue {
	return attribute.KeyValue{
		Key:   StoredBytesKey,
		Value: attribute.Int64Value(v),
	}
}

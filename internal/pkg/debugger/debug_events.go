package debugger

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MaxPayloadBytes caps how much of a payload is written to the log.
const MaxPayloadBytes = 2048

// DebugPayload logs a raw provider payload at debug level, compacted when it
// is valid JSON. Nothing is formatted unless debug logging is enabled.
func DebugPayload(logger *zap.Logger, msg string, payload []byte, fields ...zap.Field) {
	if logger == nil || !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err == nil {
		payload = compact.Bytes()
	} else {
		fields = append(fields, zap.NamedError("json_error", err))
	}

	truncated := len(payload) > MaxPayloadBytes
	if truncated {
		payload = payload[:MaxPayloadBytes]
	}

	fields = append(fields, zap.ByteString("payload", payload), zap.Bool("truncated", truncated))
	logger.Debug(msg, fields...)
}

package debugger

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MaxPayloadBytes caps how much of a payload is written to the log.
const MaxPayloadBytes = 4096

// LogPayload writes an external service payload at debug level, indented
// when it is JSON. It does nothing unless the logger has debug enabled.
func LogPayload(logger *zap.Logger, msg string, payload []byte) {
	if logger == nil || !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	logger.Debug(msg, zap.String("payload", Format(payload)))
}

// Format indents JSON payloads and truncates anything longer than
// MaxPayloadBytes.
func Format(payload []byte) string {
	out := payload
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err == nil {
		out = pretty.Bytes()
	}
	if len(out) > MaxPayloadBytes {
		return string(out[:MaxPayloadBytes]) + "...(truncated)"
	}
	return string(out)
}

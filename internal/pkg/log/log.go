// Package log adds logging utilities.
package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/JovannMC/tracker-emulation-go/internal/pkg/firmware"

	"github.com/sirupsen/logrus"
)

// SetLogger sets the default logger's level.
func SetLogger(level string) {
	logrus.SetLevel(logrus.ErrorLevel)
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = time.RFC3339
	logrus.SetFormatter(customFormatter)
	customFormatter.FullTimestamp = true
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

// InboundToFields renders a decoded client-bound packet for structured logs.
func InboundToFields(seq uint64, payload firmware.ClientBound) logrus.Fields {
	fields := logrus.Fields{
		"seq":    seq,
		"packet": fmt.Sprintf("%T", payload),
	}
	switch p := payload.(type) {
	case firmware.ServerPing:
		fields["challenge"] = fmt.Sprintf("%x", p.Challenge)
	case firmware.HandshakeResponse:
		fields["version"] = p.Version
	case firmware.Unknown:
		fields["tag"] = p.Tag
	}
	return fields
}

// MacToField renders a hardware address the way it appears in tracker logs.
func MacToField(mac [6]byte) string {
	parts := make([]string, len(mac))
	for i, b := range mac {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ":")
}

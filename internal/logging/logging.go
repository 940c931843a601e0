// Package logging wires zap into the standard library's slog.Logger,
// grounded on services/marketfeeds/common/logger/logger.go in the
// pack: a zapcore.Core wrapped by zap/exp/zapslog, so the rest of the
// module can depend on the stdlib interface while the handler
// underneath is zap's structured, leveled encoder.
package logging

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New builds a *slog.Logger backed by zap. isProd selects the JSON
// production encoder; otherwise a colorized console encoder suited to
// local development. The returned sync func flushes zap's buffered
// writer and should be deferred by the caller (cmd/server).
func New(isProd bool) (*slog.Logger, func() error) {
	var zapLogger *zap.Logger

	if isProd {
		zapLogger = zap.Must(zap.NewProduction())
	} else {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapLogger = zap.Must(config.Build())
	}

	return slog.New(zapslog.NewHandler(zapLogger.Core())), zapLogger.Sync
}

package telemetry

import (
	"log/slog"
)

// SlogAPI implements API using the log/slog package, params are
// interpreted as alternating key/value pairs.
type SlogAPI struct {
	logger *slog.Logger
}

// NewSlogAPI reports to `logger`, nil means slog.Default() at the time of each report.
func NewSlogAPI(logger *slog.Logger) SlogAPI {
	return SlogAPI{logger: logger}
}

func (s SlogAPI) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.log().Error(id, params...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.log().Warn(id, params...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	s.log().Debug(message, params...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.log().Info(id, "n", count)
}

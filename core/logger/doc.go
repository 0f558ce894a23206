// Package logger builds the zap logger shared by the server, the sync commands and
// the merge engine.
//
// Level "debug" selects zap's development config, anything else the production
// config at the given level. Format "console" switches to the colored console
// encoder; the default is JSON.
//
// WithRayID tags a logger with the request id set by the rayid middleware, so all
// lines emitted while serving one request can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	l := logger.WithRayID(log, c)
//	l.Error("day sync failed", zap.Error(err))
package logger

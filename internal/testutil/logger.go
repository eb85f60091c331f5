// Package testutil provides shared test helpers for the query engine
// packages: a development logger, a scripted fake executor, and registry
// fixtures mirroring the platform's entity configuration.
package testutil

import "go.uber.org/zap"

// Logger returns a development Zap logger for use in tests.
// Panics on construction failure (should never happen in tests).
func Logger() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic("testutil.Logger: " + err.Error())
	}
	return l
}

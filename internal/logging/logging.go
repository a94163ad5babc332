// Package logging builds the process-wide zap logger. Construction is
// explicit and passed down through component constructors rather than
// held in a package-level global, so tests can substitute an observer
// core without touching shared state.
package logging

import "go.uber.org/zap"

// New builds a logger appropriate for env ("production" or anything
// else, which gets the more verbose, human-readable development config).
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Source returns a field for the current directory source name. No
// package calls it; cmd/icemaker's run-all logging passes the source as
// a plain "source" key instead.
func Source(name string) zap.Field { return zap.String("source", name) }

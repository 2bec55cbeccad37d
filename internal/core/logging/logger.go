package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with a component name under the
// "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Setup installs l as the global logger with ContextHook attached, so events
// logged with a context carry its source and comment fields.
func Setup(l zerolog.Logger) {
	log.Logger = l.Hook(ContextHook{})
	zerolog.DefaultContextLogger = &log.Logger
}

// Package logging configures log/slog for the clspec binaries.
//
// Both entry points install a JSON handler on stderr annotated with the
// module name and build version. clspecd reads its level from LOG_LEVEL:
//
//	logging.SetDefaultStructuredLogger("clspecd", version)
//
// clspec takes it from --log-level, which falls back to CLSPEC_LOG_LEVEL and
// then LOG_LEVEL:
//
//	logging.SetDefaultStructuredLoggerWithLevel("clspec", version, level)
//
// Levels are debug, info, warn (or warning) and error, matched without case.
// Anything else means info. At debug the handler adds source locations.
//
// The library packages only log through the slog default, and only at debug
// level: grammar.Compile reports "grammar compiled" with parameter, topic and
// alias counts, and matcher.Match reports "command line matched" or "help
// requested". The api package logs rejected matches at debug and definition
// load failures at error.
//
// NewLogLogger adapts the default handler for APIs that take a *log.Logger.
// The server package uses it for http.Server.ErrorLog.
package logging

// Package quovadis is a navigation rendering and coordination engine. It
// turns a recursive navigation state tree (screens nested inside stacks,
// tabs and multi-pane containers, see the navtree package) into a tree of
// composited surfaces, coordinates enter/exit animations across navigation
// transitions, and runs gesture-driven speculative back navigation
// ("predictive back") where the user previews the destination of a back
// action before committing to it.
//
// The engine renders no pixels itself: screens resolve to opaque content
// through an external ContentResolver, container chrome comes from an
// external WrapperResolver, and a platform backend (see platform/sdlui)
// composites the resulting Surface tree. What the engine owns is the hard,
// stateful middle: the subtree cache that preserves render state across
// navigation, the per-container animation timelines, and the
// predictive-back state machine. Together they maintain one consistent
// notion of what is on screen, what was, and how far through a transition
// we are.
package quovadis

import (
	"log/slog"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/internal"
)

// Options configures an Engine.
type Options struct {
	Navigator Navigator       // authoritative state owner (required)
	Content   ContentResolver // destination -> render function (required)
	Wrappers  WrapperResolver // tab/pane chrome; nil means defaults only

	Transitions          *Resolver // nil creates a fresh resolver
	TransitionConfigPath string    // optional TOML transition-override metadata

	CacheSize int // distinct subtree keys kept; 0 means the default of 10

	LogPath  string // full log file path including filename; empty logs to stdout
	LogLevel string // "debug", "info", "warn", "error"; empty means info
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. Call before New to take effect
// during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging. Screen
// render functions receive the same logger through their NodeContext.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string
// (e.g. "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// Close releases engine-global resources (the log file). Call before
// program exit.
func Close() {
	internal.CloseLogger()
}

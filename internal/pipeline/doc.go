// Package pipeline wires the engine packages into the commands: it resolves
// paths from the config, runs extraction, catalog, audit and fix phases in
// order, writes reports and deploys the result.
//
// Phases log through the console logger and accumulate counters in
// [RunStats]; only fatal-input conditions abort a run.
package pipeline

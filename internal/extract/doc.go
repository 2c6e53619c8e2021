// Package extract runs the external archive tools that pull the record
// database and the stock localization file out of the game's Data.p4k:
//
//   - unp4k <Data.p4k> <pattern> extracts matching entries into the working
//     directory.
//   - unforge <Game.dcb> converts the record database to an XML tree beside it.
//
// Prepare drives both with the known fallbacks (Game2.dcb before Game.dcb,
// two localization paths) and skips work whose output already exists.
//
// Split into tools.go, builder.go, executor.go, fallback.go, prepare.go.
package extract

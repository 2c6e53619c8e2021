// Package errors re-exports github.com/cockroachdb/errors and defines the
// sentinel errors shared by the engine and the CLI.
//
// Fatal-input conditions (a required file or directory is absent, or a store
// cannot be decoded) are marked with one of the sentinels below so callers can
// tell them apart from "ran but found nothing to do":
//
//	doc, err := kvs.LoadDocument(path, encodings)
//	if errors.IsFatalInput(err) {
//	    return exitFatal
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping.
var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	Mark      = crdb.Mark
	WithStack = crdb.WithStack
)

// User-facing hints and details.
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Inspection.
var (
	Is    = crdb.Is
	IsAny = crdb.IsAny
	As    = crdb.As
)

// Sentinel errors. Wrap them with Wrap/Wrapf to add context; Is still matches.
var (
	// ErrInputNotFound: a required input file or directory does not exist.
	ErrInputNotFound = New("input not found")

	// ErrUndecodable: a localization file failed every configured encoding.
	ErrUndecodable = New("localization file could not be decoded")

	// ErrRecordRootMissing: the record directory of the extracted tree is absent.
	ErrRecordRootMissing = New("record directory not found")

	// ErrToolNotFound: an external extraction binary is not available.
	ErrToolNotFound = New("extraction tool not found")

	// ErrNoVersion: no version-named folder exists under the pack root.
	ErrNoVersion = New("no version folder found")

	// ErrNoChannel: none of the preferred channel folders exists.
	ErrNoChannel = New("no channel folder found")
)

// IsFatalInput reports whether err is one of the fatal-input conditions that
// abort a run before any partial work.
func IsFatalInput(err error) bool {
	return err != nil && IsAny(err,
		ErrInputNotFound,
		ErrUndecodable,
		ErrRecordRootMissing,
		ErrToolNotFound,
		ErrNoVersion,
		ErrNoChannel,
	)
}

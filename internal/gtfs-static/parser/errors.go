package parser

import "fmt"

// ArchiveError reports a feed archive that is missing or cannot be read.
type ArchiveError struct {
	Path  string
	Table string // set when a single member could not be read
	Err   error
}

func (e *ArchiveError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("reading %s in archive %s: %v", e.Table, e.Path, e.Err)
	}
	return fmt.Sprintf("opening archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// MissingTableError reports a required table, or a required column of a
// table, that is absent from the archive.
type MissingTableError struct {
	Table  string
	Column string
}

func (e *MissingTableError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("table %s is missing required column %q", e.Table, e.Column)
	}
	return fmt.Sprintf("archive is missing required table %s", e.Table)
}

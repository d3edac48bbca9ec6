// Package history reads session labels from the Claude Code history log.
//
// The log is a line-delimited JSON file written by Claude Code itself. It is
// only ever read here, and every failure degrades to "no label".
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/xabinapal/ccnotify/internal/utils"
)

const (
	// DisplayLength is the maximum number of characters kept from a display label.
	DisplayLength = 40

	maxLineSize = 16 * 1024 * 1024
)

// Status describes how a lookup ended.
type Status int

const (
	// StatusSkipped means no session ID was given.
	StatusSkipped Status = iota
	// StatusFound means a matching entry was found.
	StatusFound
	// StatusNotFound means the log was scanned without a match.
	StatusNotFound
	// StatusFileMissing means the log does not exist.
	StatusFileMissing
	// StatusParseError means no match was found and some lines were malformed.
	StatusParseError
	// StatusReadError means the log could not be opened or read.
	StatusReadError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusFileMissing:
		return "file_missing"
	case StatusParseError:
		return "parse_error"
	case StatusReadError:
		return "read_error"
	default:
		return "unknown"
	}
}

// Entry is a single history record. Only the fields used for lookup are decoded.
type Entry struct {
	SessionID string `json:"sessionId"`
	Display   string `json:"display"`
}

// Result is the outcome of a Lookup.
type Result struct {
	Status Status
	// Label is the truncated display of the last matching entry.
	Label string
	// Lines is the number of non-empty lines scanned.
	Lines int
	// BadLines is the number of lines that were not valid JSON objects.
	BadLines int
	// Err holds the underlying error for StatusReadError and StatusFileMissing.
	// A read error after a match keeps StatusFound and is reported here.
	Err error
}

// Display returns the session label, or "" unless the lookup found one.
func (r Result) Display() string {
	if r.Status != StatusFound {
		return ""
	}
	return r.Label
}

// Lookup scans the history log at path for entries of sessionID.
// The last matching entry wins.
func Lookup(path, sessionID string) Result {
	if sessionID == "" {
		return Result{Status: StatusSkipped}
	}

	// #nosec G304 - path comes from user configuration
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Status: StatusFileMissing, Err: err}
		}
		return Result{Status: StatusReadError, Err: err}
	}
	defer f.Close()

	return scan(f, sessionID)
}

func scan(r io.Reader, sessionID string) Result {
	res := Result{Status: StatusNotFound}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	found := false
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		res.Lines++

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			res.BadLines++
			continue
		}
		if entry.SessionID != sessionID {
			continue
		}

		found = true
		res.Label = utils.Truncate(entry.Display, DisplayLength)
	}

	res.Err = scanner.Err()

	switch {
	case found:
		res.Status = StatusFound
	case res.Err != nil:
		res.Status = StatusReadError
	case res.BadLines > 0:
		res.Status = StatusParseError
	}

	return res
}

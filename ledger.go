package blockpack

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// ledgerEntry is one advisory line of the <base>.meta sidecar:
//
//	<id> <original_length> <stored_length> <digest_hex>
//
// Lengths here exist for audit only and are never trusted over the
// container's own record fields.
type ledgerEntry struct {
	id       int
	original int64
	stored   int64
	digest   string
}

// readLedger parses exactly want entries in id order.
func readLedger(path string, want int) ([]ledgerEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	entries := make([]ledgerEntry, 0, want)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, errors.Errorf("line %d: got %d fields, want 4", len(entries), len(fields))
		}
		var e ledgerEntry
		if e.id, err = strconv.Atoi(fields[0]); err != nil {
			return nil, errors.Wrapf(err, "line %d: id", len(entries))
		}
		if e.original, err = strconv.ParseInt(fields[1], 10, 64); err != nil {
			return nil, errors.Wrapf(err, "line %d: original length", len(entries))
		}
		if e.stored, err = strconv.ParseInt(fields[2], 10, 64); err != nil {
			return nil, errors.Wrapf(err, "line %d: stored length", len(entries))
		}
		e.digest = strings.ToLower(fields[3])
		if e.id != len(entries) {
			return nil, errors.Errorf("line %d: unexpected id %d", len(entries), e.id)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	if len(entries) != want {
		return nil, errors.Errorf("got %d entries, container has %d chunks", len(entries), want)
	}
	return entries, nil
}

// Package rtxt reads and writes aapt text symbol files (R.txt).
//
// Each line has the form
//
//	int <type> <name> <id>
//
// where id is a hex (0x...) or decimal integer. Styleable arrays
// ("int[] styleable ...") carry no single id and are skipped.
package rtxt

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	kindInt      = "int"
	kindIntArray = "int[]"
)

// Parse reads R.txt content. Blank lines and lines starting with '#' are ignored.
func Parse(r io.Reader) ([]domain.Entry, error) {
	var entries []domain.Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, skip, err := parseLine(line)
		if err != nil {
			err = zerr.With(err, "line", lineNo)
			return nil, zerr.With(err, "content", line)
		}
		if skip {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSymbolsReadFailed.Error())
	}

	return entries, nil
}

func parseLine(line string) (domain.Entry, bool, error) {
	fields := strings.Fields(line)
	if fields[0] == kindIntArray {
		return domain.Entry{}, true, nil
	}
	if fields[0] != kindInt || len(fields) != 4 {
		return domain.Entry{}, false, domain.ErrSymbolsParseFailed
	}

	typ, err := domain.ParseResourceType(fields[1])
	if err != nil {
		return domain.Entry{}, false, err
	}

	id, err := strconv.ParseInt(fields[3], 0, 64)
	if err != nil || id < 0 {
		return domain.Entry{}, false, zerr.With(domain.ErrInvalidResourceID, "id", fields[3])
	}

	return domain.Entry{Type: typ, Name: fields[2], ID: int(id)}, false, nil
}

// ReadFile parses the R.txt file at path.
func ReadFile(path string) ([]domain.Entry, error) {
	// #nosec G304 -- path comes from a validated namespace file
	f, err := os.Open(path)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrSymbolsReadFailed.Error())
		return nil, zerr.With(err, "path", path)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	entries, err := Parse(f)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return entries, nil
}

// Write emits entries in R.txt format, one per line, in the order given.
func Write(w io.Writer, entries iter.Seq[domain.Entry]) error {
	bw := bufio.NewWriter(w)
	for e := range entries {
		if _, err := fmt.Fprintf(bw, "%s %s %s 0x%08x\n", kindInt, e.Type, e.Name, e.ID); err != nil {
			return err
		}
	}
	return bw.Flush()
}

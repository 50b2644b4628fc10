package sentences

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// LoadFile reads one sentence per line from path.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sentence file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only sentence file.
			_ = cerr
		}
	}()

	out, err := Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return out, nil
}

// Read parses sentences from r. Blank lines and lines starting with '#'
// are skipped.
func Read(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, Normalize(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyPool
	}
	return out, nil
}

// Normalize trims the sentence and collapses whitespace runs to a
// single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

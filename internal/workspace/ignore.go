package workspace

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// EnsureIgnoreEntries makes sure each entry appears as a line in the ignore
// file at path. When the file does not exist it is created from defaults
// followed by any entries defaults lacks.
func EnsureIgnoreEntries(path string, defaults []byte, entries ...string) (string, error) {
	data, err := IgnoreContent(path, defaults, entries...)
	if err != nil {
		return "", err
	}
	return WriteFile(path, data, 0o644)
}

// IgnoreContent returns what EnsureIgnoreEntries would write to path.
func IgnoreContent(path string, defaults []byte, entries ...string) ([]byte, error) {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err != nil {
		current = defaults
	}

	present := ignoreLines(current)
	var buf bytes.Buffer
	buf.Write(current)
	for _, e := range entries {
		if present[normalizeIgnore(e)] {
			continue
		}
		if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		buf.WriteString(e)
		buf.WriteByte('\n')
		present[normalizeIgnore(e)] = true
	}
	return buf.Bytes(), nil
}

func ignoreLines(data []byte) map[string]bool {
	lines := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines[normalizeIgnore(line)] = true
	}
	return lines
}

// normalizeIgnore treats "dir" and "dir/" as the same entry.
func normalizeIgnore(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), "/")
}

package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// maxLineBytes bounds a single log line; longer lines fail the read.
const maxLineBytes = 1024 * 1024

// Read returns the last maxLines lines of the file at path, oldest first.
// maxLines <= 0 returns every line. A missing file yields no lines and no error,
// since the log is only created once the TUI has run.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count < maxLines {
		copy(lines, ring[:count])
		return lines, nil
	}
	for i := range lines {
		lines[i] = ring[(next+i)%maxLines]
	}
	return lines, nil
}

// Match keeps the lines containing needle, ignoring case. An empty needle keeps
// everything.
func Match(lines []string, needle string) []string {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			out = append(out, line)
		}
	}
	return out
}

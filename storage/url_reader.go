package storage

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadURLs returns the search URLs listed in the file at path, one per line.
// Surrounding whitespace is trimmed; blank lines and lines starting with #
// are ignored.
func ReadURLs(path string) ([]string, error) {
	file, err := os.Open(path) //nolint:gosec // user-provided input path
	if err != nil {
		return nil, fmt.Errorf("could not open URL file: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read URL file: %w", err)
	}
	return urls, nil
}

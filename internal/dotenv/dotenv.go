package dotenv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single dotenv line.
const maxLineSize = 1 << 20

var (
	ErrRead        = errors.New("could not read environment variables")
	ErrInvalidLine = errors.New("invalid dotenv line")
)

// Pair is one NAME=value entry, in file order.
type Pair struct {
	Name  string
	Value string
}

// Read parses the dotenv file at path.
func Read(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrRead, path, err)
	}
	defer file.Close()

	pairs, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// Parse splits each line on its first '='. Blank lines and lines starting
// with '#' are skipped; values are kept byte for byte.
func Parse(r io.Reader) ([]Pair, error) {
	var pairs []Pair

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w at line %d: %s", ErrInvalidLine, lineNum, line)
		}
		pairs = append(pairs, Pair{Name: name, Value: value})
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w at line %d: %w", ErrInvalidLine, lineNum+1, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return pairs, nil
}

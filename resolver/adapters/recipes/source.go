// Package recipes reads raw ingredient lines for audit runs. The recipe CRUD
// layer lives elsewhere; audits work from an exported newline-delimited dump.
package recipes

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type FileSource struct {
	log  *slog.Logger
	path string
}

func NewFileSource(path string, log *slog.Logger) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("empty ingredient dump path specified")
	}
	return &FileSource{
		log:  log,
		path: path,
	}, nil
}

// Lines returns all non-blank ingredient lines from the dump.
func (s *FileSource) Lines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := f.Close(); e != nil {
			s.log.Debug("close dump failed", "error", e)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/pageorder/internal/ir"
)

// Format identifies an input encoding.
type Format string

// Supported input formats.
const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// StdinSource is the path that makes Load read standard input.
const StdinSource = "-"

// Result contains a loaded puzzle and where it came from.
type Result struct {
	Puzzle ir.Puzzle
	Source string
	Format Format
	Hash   string // ir.PuzzleHash of Puzzle
}

// FormatForPath selects an input format from a file extension.
// Paths without a recognised structured extension are read as text.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	case ".txt", ".in", "":
		return FormatText, nil
	default:
		return "", &LoadError{
			Code:    ErrCodeBadFormat,
			Message: fmt.Sprintf("unsupported input extension %q (want .txt, .yaml, .yml or .cue)", filepath.Ext(path)),
			Source:  path,
		}
	}
}

// Load reads and parses the puzzle at path. A path of "-" reads stdin as
// text.
func Load(path string) (*Result, error) {
	if path == StdinSource {
		return LoadReader(os.Stdin, StdinSource, FormatText)
	}

	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input file not found: %s", path), Source: path}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing input file: %v", err), Source: path}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input is a directory: %s", path), Source: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("opening input file: %v", err), Source: path}
	}
	defer f.Close()

	return LoadReader(f, path, format)
}

// LoadReader parses r in the given format. source labels errors and the
// result.
func LoadReader(r io.Reader, source string, format Format) (*Result, error) {
	var (
		puzzle *ir.Puzzle
		err    error
	)

	switch format {
	case FormatText:
		puzzle, err = ParseText(r)
	case FormatYAML, FormatCUE:
		var buf bytes.Buffer
		if _, readErr := io.Copy(&buf, r); readErr != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading input: %v", readErr), Source: source}
		}
		if format == FormatYAML {
			puzzle, err = ParseYAML(buf.Bytes())
		} else {
			puzzle, err = ParseCUE(buf.Bytes(), source)
		}
	default:
		return nil, &LoadError{Code: ErrCodeBadFormat, Message: fmt.Sprintf("unsupported format %q", format), Source: source}
	}
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			if loadErr.Source == "" {
				loadErr.Source = source
			}
			return nil, loadErr
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error(), Source: source}
	}

	hash, err := ir.PuzzleHash(*puzzle)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error(), Source: source}
	}

	slog.Debug("puzzle loaded",
		"source", source,
		"format", string(format),
		"rules", len(puzzle.Rules),
		"updates", len(puzzle.Updates),
	)

	return &Result{
		Puzzle: *puzzle,
		Source: source,
		Format: format,
		Hash:   hash,
	}, nil
}

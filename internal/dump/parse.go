package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/banshee-data/leveldump/internal/fsutil"
	"github.com/banshee-data/leveldump/internal/monitoring"
)

const (
	openScope    = "{"
	closeScope   = "}"
	levelKeyword = "Level"
	pointKeyword = "Point"
)

// maxLineBytes bounds a single dump line; bufio's 64KB default is too small
// for some hand-edited dumps.
const maxLineBytes = 1 << 20

// Parse builds the level/point mapping from dump lines in a single pass.
//
// Closing a scope does not restore the level that was active when the scope
// was opened: a level stays current until the next Level line. Any malformed
// Level or Point line aborts the parse and no partial result is returned.
func Parse(lines []string) (Levels, error) {
	p := parser{levels: make(Levels), current: RootLevel}
	for i, raw := range lines {
		if err := p.line(i+1, raw); err != nil {
			return nil, err
		}
	}
	if p.depth != 0 {
		monitoring.Debugf("dump ended at scope depth %d", p.depth)
	}
	return p.levels, nil
}

// parser holds the state of one pass over a dump.
type parser struct {
	levels  Levels
	depth   int
	current int
}

func (p *parser) line(n int, raw string) error {
	line := strings.TrimSpace(raw)
	switch {
	case line == openScope:
		p.depth++
	case line == closeScope:
		p.depth--
	case strings.HasPrefix(line, levelKeyword):
		id, err := parseLevel(line)
		if err != nil {
			return &ParseError{Line: n, Text: line, Kind: ErrMalformedLevel, Cause: err}
		}
		p.current = id
	case strings.HasPrefix(line, pointKeyword):
		pt, err := parsePoint(line)
		if err != nil {
			return &ParseError{Line: n, Text: line, Kind: ErrMalformedPoint, Cause: err}
		}
		p.levels.Append(p.current, pt)
	}
	return nil
}

// ParseReader reads every line from r and parses them.
func ParseReader(r io.Reader) (Levels, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return Parse(lines)
}

// ParseFile opens path on fsys, parses it and closes it again.
func ParseFile(fsys fsutil.FileSystem, path string) (Levels, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	levels, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return levels, nil
}

// parseLevel reads the id from "Level N:". A single trailing non-digit
// character is dropped before conversion.
func parseLevel(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, errors.New("missing level id")
	}
	tok := fields[1]
	if r, size := utf8.DecodeLastRuneInString(tok); !unicode.IsDigit(r) {
		tok = tok[:len(tok)-size]
	}
	return strconv.Atoi(tok)
}

func parsePoint(line string) (Point, error) {
	fields := strings.Fields(line)[1:]
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("want 2 coordinates, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

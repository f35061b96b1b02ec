package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/strhash/intern"
)

// textLexer tokenises the line-oriented text snapshot format:
//
//	version "1.0.0"
//	reserved32 -1
//	reserved64 0
//	int32 72 = "Hello"
//	uint64 123456789 = "Hello"
var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+`},
	{Name: "Ident", Pattern: `[a-z][a-z0-9]*`},
	{Name: "Equal", Pattern: `=`},
	{Name: "Newline", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

type textFile struct {
	Lines []*textLine `@@*`
}

type textLine struct {
	Pos        lexer.Position
	Version    *string    `  "version" @String`
	Reserved32 *string    `| "reserved32" @Number`
	Reserved64 *string    `| "reserved64" @Number`
	Entry      *textEntry `| @@`
}

type textEntry struct {
	Pos   lexer.Position
	Width string `@("int32" | "uint64")`
	Key   string `@Number`
	Value string `"=" @String`
}

var textParser = participle.MustBuild[textFile](
	participle.Lexer(textLexer),
	participle.Elide("Whitespace", "Newline", "Comment"),
)

func decodeText(r io.Reader) (*Snapshot, error) {
	file, err := textParser.Parse("snapshot", r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text snapshot: %w", err)
	}

	s := newSnapshot()
	for _, line := range file.Lines {
		switch {
		case line.Version != nil:
			v, err := strconv.Unquote(*line.Version)
			if err != nil {
				return nil, fmt.Errorf("%s: version: %w", line.Pos, err)
			}
			s.Version = v
		case line.Reserved32 != nil:
			v, err := strconv.ParseInt(*line.Reserved32, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%s: reserved32: %w", line.Pos, err)
			}
			s.Reserved32 = int32(v)
		case line.Reserved64 != nil:
			v, err := strconv.ParseUint(*line.Reserved64, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: reserved64: %w", line.Pos, err)
			}
			s.Reserved64 = v
		case line.Entry != nil:
			if err := s.addTextEntry(line.Entry); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// addTextEntry unquotes with strconv so \x escapes stay raw bytes and
// values that are not valid UTF-8 survive unchanged.
func (s *Snapshot) addTextEntry(e *textEntry) error {
	value, err := strconv.Unquote(e.Value)
	if err != nil {
		return fmt.Errorf("%s: value: %w", e.Pos, err)
	}

	switch e.Width {
	case "int32":
		key, err := strconv.ParseInt(e.Key, 10, 32)
		if err != nil {
			return fmt.Errorf("%s: int32 key: %w", e.Pos, err)
		}
		s.Int32 = append(s.Int32, intern.Entry[int32]{Key: int32(key), Value: value})
	case "uint64":
		key, err := strconv.ParseUint(e.Key, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: uint64 key: %w", e.Pos, err)
		}
		s.Uint64 = append(s.Uint64, intern.Entry[uint64]{Key: key, Value: value})
	}
	return nil
}

func encodeText(w io.Writer, s *Snapshot) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "version %s\n", strconv.Quote(s.Version))
	fmt.Fprintf(bw, "reserved32 %d\n", s.Reserved32)
	fmt.Fprintf(bw, "reserved64 %d\n", s.Reserved64)
	for _, e := range s.Int32 {
		fmt.Fprintf(bw, "int32 %d = %s\n", e.Key, strconv.Quote(e.Value))
	}
	for _, e := range s.Uint64 {
		fmt.Fprintf(bw, "uint64 %d = %s\n", e.Key, strconv.Quote(e.Value))
	}

	return bw.Flush()
}

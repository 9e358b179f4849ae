package snapshot

import (
	"bufio"
	"io"
)

type quoteState int

const (
	atFieldStart quoteState = iota
	inBareField
	inQuotedField
	afterQuote
	afterClosedQuote
)

// quotePadFilter drops blanks between a closing quote and the next delimiter
// (`"Main St" ,B1`). encoding/csv rejects them even with TrimLeadingSpace.
// Line breaks are never removed, so csv line positions are unchanged.
type quotePadFilter struct {
	src   *bufio.Reader
	state quoteState
	out   []byte
}

func newQuotePadFilter(src io.Reader) *quotePadFilter {
	return &quotePadFilter{src: bufio.NewReader(src)}
}

func (f *quotePadFilter) Read(p []byte) (int, error) {
	for len(f.out) < len(p) {
		b, err := f.src.ReadByte()
		if err != nil {
			if len(f.out) == 0 {
				return 0, err
			}
			break
		}
		f.feed(b)
	}

	n := copy(p, f.out)
	f.out = f.out[:copy(f.out, f.out[n:])]
	return n, nil
}

func (f *quotePadFilter) feed(b byte) {
	switch f.state {
	case atFieldStart:
		switch b {
		case ' ', '\t', ',', '\n', '\r':
		case '"':
			f.state = inQuotedField
		default:
			f.state = inBareField
		}
	case inBareField:
		if b == ',' || b == '\n' || b == '\r' {
			f.state = atFieldStart
		}
	case inQuotedField:
		if b == '"' {
			f.state = afterQuote
		}
	case afterQuote:
		switch b {
		case '"':
			f.state = inQuotedField
		case ' ', '\t':
			f.state = afterClosedQuote
			return
		case ',', '\n', '\r':
			f.state = atFieldStart
		default:
			f.state = inBareField
		}
	case afterClosedQuote:
		switch b {
		case ' ', '\t':
			return
		case ',', '\n', '\r':
			f.state = atFieldStart
		default:
			f.state = inBareField
		}
	}
	f.out = append(f.out, b)
}

package seq

import (
	"strconv"
	"strings"

	"rsderive/internal/diag"
	"rsderive/internal/record"
	"rsderive/internal/source"
	"rsderive/internal/token"
)

// Invocation is a parsed `seq!` header and body.
type Invocation struct {
	Var       string
	VarSpan   source.Span
	Start     int64
	End       int64
	Inclusive bool
	// Body excludes the outer braces.
	Body     []token.Token
	BodySpan source.Span
}

// MaxIterations caps the expansion size.
const MaxIterations = 1 << 16

// Count returns the number of iterations.
func (inv *Invocation) Count() uint64 {
	if inv.End < inv.Start {
		return 0
	}
	n := uint64(inv.End - inv.Start) //nolint:gosec // End >= Start
	if inv.Inclusive {
		n++
	}
	return n
}

// Values returns the iteration values in order.
func (inv *Invocation) Values() []int64 {
	n := inv.Count()
	out := make([]int64, 0, n)
	for i := uint64(0); i < n; i++ {
		out = append(out, inv.Start+int64(i)) //nolint:gosec // bounded by Count
	}
	return out
}

type headerParser struct {
	toks []token.Token
	pos  int
	call source.Span
}

func (p *headerParser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF, Span: p.call.ZeroideToEnd()}
}

func (p *headerParser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

// Parse reads the invocation from the tokens between the macro delimiters.
// call is the span of the whole invocation, used for errors at end of input.
func Parse(toks []token.Token, call source.Span) (*Invocation, error) {
	p := &headerParser{toks: toks, call: call}
	inv := &Invocation{}

	name := p.advance()
	if name.Kind != token.Ident {
		return nil, record.Errorf(diag.SeqExpectIdent, name.Span, "expected identifier, found %s", describe(name))
	}
	inv.Var, inv.VarSpan = name.Text, name.Span

	if tok := p.advance(); tok.Kind != token.KwIn {
		return nil, record.Errorf(diag.SeqExpectIn, tok.Span, "expected `in`, found %s", describe(tok))
	}

	start, err := p.parseInt()
	if err != nil {
		return nil, err
	}
	switch tok := p.advance(); tok.Kind {
	case token.DotDot:
	case token.DotDotEq:
		inv.Inclusive = true
	default:
		return nil, record.Errorf(diag.SeqExpectRange, tok.Span, "expected `..` or `..=`, found %s", describe(tok))
	}
	end, err := p.parseInt()
	if err != nil {
		return nil, err
	}
	inv.Start, inv.End = start.value, end.value

	open := p.advance()
	if open.Kind != token.LBrace {
		return nil, record.Errorf(diag.SeqExpectBody, open.Span, "expected `{`, found %s", describe(open))
	}
	closeIdx := matchingClose(p.toks, p.pos-1)
	if closeIdx < 0 {
		return nil, record.Errorf(diag.SeqExpectBody, open.Span, "unclosed seq body")
	}
	inv.Body = p.toks[p.pos:closeIdx]
	inv.BodySpan = open.Span.ZeroideToEnd().Cover(p.toks[closeIdx].Span.ZeroideToStart())
	p.pos = closeIdx + 1
	if tok := p.peek(); tok.Kind != token.EOF {
		return nil, record.Errorf(diag.SeqTrailingInput, tok.Span, "unexpected %s after seq body", describe(tok))
	}

	if start.value > end.value {
		return nil, record.Errorf(diag.SeqEmptyRange, start.span.Cover(end.span),
			"range start %d is greater than end %d", start.value, end.value)
	}
	if inv.Count() > MaxIterations {
		return nil, record.Errorf(diag.SeqRangeTooLarge, start.span.Cover(end.span),
			"range has %d iterations, at most %d are allowed", inv.Count(), MaxIterations)
	}
	return inv, nil
}

type intLit struct {
	value int64
	span  source.Span
}

func (p *headerParser) parseInt() (intLit, error) {
	neg := false
	first := p.peek()
	if first.Kind == token.Minus {
		p.advance()
		neg = true
	}
	tok := p.advance()
	if tok.Kind != token.IntLit {
		return intLit{}, record.Errorf(diag.SeqExpectInt, tok.Span, "expected integer literal, found %s", describe(tok))
	}
	sp := tok.Span
	if neg {
		sp = first.Span.Cover(tok.Span)
	}
	v, ok := parseIntText(tok.Text, neg)
	if !ok {
		return intLit{}, record.Errorf(diag.SeqExpectInt, sp, "integer literal `%s` is out of range", tok.Text)
	}
	return intLit{value: v, span: sp}, nil
}

var intSuffixes = []string{"i128", "u128", "isize", "usize", "i16", "u16", "i32", "u32", "i64", "u64", "i8", "u8"}

// parseIntText decodes a Rust integer literal: radix prefixes, `_`
// separators and a type suffix are allowed. Suffixes start with `i`/`u`,
// which are not hex digits, so stripping them is safe for `0x..` too.
func parseIntText(text string, neg bool) (int64, bool) {
	s := strings.ReplaceAll(text, "_", "")
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0o"):
		base, s = 8, s[2:]
	case strings.HasPrefix(s, "0b"):
		base, s = 2, s[2:]
	}
	for _, suf := range intSuffixes {
		if strings.HasSuffix(s, suf) {
			s = strings.TrimSuffix(s, suf)
			break
		}
	}
	if neg {
		s = "-" + s
	}
	v, err := strconv.ParseInt(s, base, 64)
	return v, err == nil
}

func matchingClose(toks []token.Token, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(toks); i++ {
		switch {
		case toks[i].IsOpen():
			depth++
		case toks[i].IsClose():
			depth--
			if depth == 0 {
				if toks[i].Kind != token.RBrace {
					return -1
				}
				return i
			}
		}
	}
	return -1
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return "`" + tok.Text + "`"
}

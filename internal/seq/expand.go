package seq

import (
	"strconv"
	"strings"

	"rsderive/internal/token"
)

// Expand renders the body for every value of the range.
func (inv *Invocation) Expand() string {
	e := &emitter{name: inv.Var}
	if len(inv.Body) > 0 {
		e.base = lineIndent(inv.Body[0].Leading)
	}
	values := inv.Values()
	if sections := findSections(inv.Body); len(sections) > 0 {
		prev := 0
		for _, sec := range sections {
			e.emit(inv.Body[prev:sec.start], 0, false)
			for k, v := range values {
				if k == 0 {
					e.writeLeading(inv.Body[sec.start])
				} else if e.last != '\n' {
					e.write(" ")
				}
				e.emit(inv.Body[sec.bodyStart:sec.bodyEnd], v, true)
			}
			prev = sec.end
		}
		e.emit(inv.Body[prev:], 0, false)
		e.newline()
		return e.sb.String()
	}
	for _, v := range values {
		e.emit(inv.Body, v, true)
		e.newline()
	}
	return e.sb.String()
}

// section is one `#( ... )*` repetition in the body.
type section struct {
	start, end         int // the whole `#( ... )*`
	bodyStart, bodyEnd int // tokens between the parens
}

func findSections(body []token.Token) []section {
	var out []section
	for i := 0; i+1 < len(body); i++ {
		if body[i].Kind != token.Pound || body[i+1].Kind != token.LParen || body[i+1].HasLeadingSpace() {
			continue
		}
		closeIdx := matchParen(body, i+1)
		if closeIdx < 0 || closeIdx+1 >= len(body) || body[closeIdx+1].Kind != token.Star {
			continue
		}
		out = append(out, section{start: i, end: closeIdx + 2, bodyStart: i + 2, bodyEnd: closeIdx})
		i = closeIdx + 1
	}
	return out
}

func matchParen(toks []token.Token, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(toks); i++ {
		switch {
		case toks[i].IsOpen():
			depth++
		case toks[i].IsClose():
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

type emitter struct {
	sb   strings.Builder
	last byte
	name string
	// base is the indentation of the first body line, removed from every line.
	base string
}

func (e *emitter) write(s string) {
	if s == "" {
		return
	}
	e.sb.WriteString(s)
	e.last = s[len(s)-1]
}

func (e *emitter) newline() {
	if e.sb.Len() > 0 && e.last != '\n' {
		e.write("\n")
	}
}

// emit writes toks, substituting the loop variable with v when subst is set.
func (e *emitter) emit(toks []token.Token, v int64, subst bool) {
	lit := strconv.FormatInt(v, 10)
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		e.writeLeading(tok)
		if !subst {
			e.write(tok.Text)
			continue
		}
		if tok.Kind == token.Ident && tok.Text == e.name {
			e.write(lit)
			continue
		}
		e.write(tok.Text)
		// paste: `ident~N` and further `~suffix` pieces glue into one identifier
		for tok.Kind == token.Ident && i+2 < len(toks) && toks[i+1].Kind == token.Tilde &&
			toks[i+2].Kind == token.Ident && !toks[i+1].HasLeadingSpace() && !toks[i+2].HasLeadingSpace() {
			piece := toks[i+2].Text
			if piece == e.name {
				piece = lit
			}
			e.write(piece)
			i += 2
		}
	}
}

// writeLeading reproduces the token's leading layout: doc comments are kept,
// a newline keeps the following indentation, any other trivia is one space.
func (e *emitter) writeLeading(tok token.Token) {
	if len(tok.Leading) == 0 || e.sb.Len() == 0 && !hasDoc(tok.Leading) {
		return
	}
	sawNewline := false
	indent := ""
	for _, tr := range tok.Leading {
		switch tr.Kind {
		case token.TriviaNewline:
			sawNewline = true
			indent = ""
		case token.TriviaSpace:
			indent = tr.Text
		case token.TriviaDocLine, token.TriviaDocBlock:
			e.newline()
			e.write(strings.TrimPrefix(indent, e.base))
			e.write(tr.Text)
			e.newline()
			sawNewline = true
			indent = ""
		}
	}
	switch {
	case sawNewline:
		e.newline()
		e.write(strings.TrimPrefix(indent, e.base))
	case e.sb.Len() > 0 && e.last != '\n':
		e.write(" ")
	}
}

func hasDoc(trivia []token.Trivia) bool {
	for _, tr := range trivia {
		if tr.Kind == token.TriviaDocLine || tr.Kind == token.TriviaDocBlock {
			return true
		}
	}
	return false
}

// lineIndent returns the spaces after the last newline in trivia, "" when
// the token does not start a line.
func lineIndent(trivia []token.Trivia) string {
	indent, sawNewline := "", false
	for _, tr := range trivia {
		switch tr.Kind {
		case token.TriviaNewline:
			indent, sawNewline = "", true
		case token.TriviaSpace:
			indent = tr.Text
		}
	}
	if !sawNewline {
		return ""
	}
	return indent
}

package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unquote возвращает значение строкового или символьного литерала Rust
// ("..", r#".."#, b"..", br"..", 'c', b'c'). ok=false для не-литералов и
// некорректных escape-последовательностей.
func Unquote(text string) (value string, ok bool) {
	s := strings.TrimPrefix(text, "b")
	if strings.HasPrefix(s, "r") {
		s = s[1:]
		hashes := 0
		for hashes < len(s) && s[hashes] == '#' {
			hashes++
		}
		s = s[hashes:]
		closing := `"` + strings.Repeat("#", hashes)
		if len(s) < 1+len(closing) || s[0] != '"' || !strings.HasSuffix(s, closing) {
			return "", false
		}
		return s[1 : len(s)-len(closing)], true
	}
	if len(s) < 2 {
		return "", false
	}
	quote := s[0]
	if (quote != '"' && quote != '\'') || s[len(s)-1] != quote {
		return "", false
	}
	body := s[1 : len(s)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", false
		}
		esc := body[i+1]
		i += 2
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '\'', '"':
			b.WriteByte(esc)
		case '0':
			b.WriteByte(0)
		case '\n':
			for i < len(body) && (body[i] == ' ' || body[i] == '\t' || body[i] == '\n' || body[i] == '\r') {
				i++
			}
		case 'x':
			if i+2 > len(body) {
				return "", false
			}
			v, err := strconv.ParseUint(body[i:i+2], 16, 8)
			if err != nil {
				return "", false
			}
			b.WriteByte(byte(v))
			i += 2
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i >= len(body) || body[i] != '{' || end < 0 {
				return "", false
			}
			digits := strings.ReplaceAll(body[i+1:i+end], "_", "")
			v, err := strconv.ParseUint(digits, 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return "", false
			}
			b.WriteRune(rune(v))
			i += end + 1
		default:
			return "", false
		}
	}
	return b.String(), true
}

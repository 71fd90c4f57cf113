package lexer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Token kinds that are not spelled by their literal text. Operators and
// punctuation use their own text as the kind ("+", "==", "(", ...).
const (
	NUMBER  = "NUMBER"
	STRING  = "STRING"
	IDENT   = "IDENT"
	NEWLINE = "NEWLINE"
	EOF     = "EOF"

	IF       = "IF"
	ELSE     = "ELSE"
	WHILE    = "WHILE"
	FOR      = "FOR"
	IN       = "IN"
	FUNC     = "FUNC"
	RETURN   = "RETURN"
	BREAK    = "BREAK"
	CONTINUE = "CONTINUE"
	CLASS    = "CLASS"
	VAR      = "VAR"
	CONST    = "CONST"
	IMPORT   = "IMPORT"
	FROM     = "FROM"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	NULL     = "NULL"
	AND      = "AND"
	OR       = "OR"
	NOT      = "NOT"
)

type Token struct {
	Type string
	Lit  string
	Line int
	Col  int
}

// identThreshold is the first code point of the Devanagari block; every rune
// at or above it may appear in an identifier.
const identThreshold = 0x0900

var keywords = func() map[string]string {
	m := map[string]string{
		"यदि":     IF,
		"अथवा":    ELSE,
		"यावत्":   WHILE,
		"प्रति":   FOR,
		"में":     IN,
		"कार्य":   FUNC,
		"वापसी":   RETURN,
		"विराम":   BREAK,
		"अनुवर्तन": CONTINUE,
		"वर्ग":    CLASS,
		"धारणा":   VAR,
		"स्थिर":   CONST,
		"आयात":    IMPORT,
		"से":      FROM,
		"सत्य":    TRUE,
		"असत्य":   FALSE,
		"शून्य":   NULL,
		"च":       AND,
		"वा":      OR,
		"न":       NOT,
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[norm.NFC.String(k)] = v
	}
	return out
}()

// Keyword reports the token kind of a reserved word.
func Keyword(word string) (string, bool) {
	k, ok := keywords[word]
	return k, ok
}

var escapes = map[rune]rune{
	'n': '\n', 'r': '\r', 't': '\t', 'b': '\b', 'f': '\f',
	'"': '"', '\'': '\'', '\\': '\\',
}

// Lex converts source into a flat token stream terminated by EOF. It never
// fails: characters outside the alphabet are skipped.
func Lex(src string) []Token {
	rs := []rune(src)
	n := len(rs)
	var out []Token
	i, line, col := 0, 1, 1

	peek := func(off int) rune {
		j := i + off
		if j >= n {
			return 0
		}
		return rs[j]
	}
	advance := func() {
		if rs[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	emit := func(typ, lit string, l, c int) {
		out = append(out, Token{Type: typ, Lit: lit, Line: l, Col: c})
	}

	for i < n {
		ch := rs[i]
		startLine, startCol := line, col

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			advance()
			continue
		case ch == '\n':
			emit(NEWLINE, "\n", startLine, startCol)
			advance()
			continue
		case ch == '#':
			for i < n && rs[i] != '\n' {
				advance()
			}
			continue
		case IsDigit(ch):
			start := i
			for i < n && IsDigit(rs[i]) {
				advance()
			}
			if i < n && rs[i] == '.' && IsDigit(peek(1)) {
				advance()
				for i < n && IsDigit(rs[i]) {
					advance()
				}
			}
			emit(NUMBER, string(rs[start:i]), startLine, startCol)
			continue
		case ch == '"' || ch == '\'':
			quote := ch
			advance()
			var b strings.Builder
			for i < n && rs[i] != quote {
				c := rs[i]
				if c == '\\' && i+1 < n {
					advance()
					c = rs[i]
					if e, ok := escapes[c]; ok {
						c = e
					}
				}
				b.WriteRune(c)
				advance()
			}
			if i < n {
				advance() // closing quote
			}
			emit(STRING, b.String(), startLine, startCol)
			continue
		case isIdentStart(ch):
			start := i
			for i < n && isIdentPart(rs[i]) {
				advance()
			}
			// Only identifier text is normalised; literals keep their source runes.
			word := norm.NFC.String(string(rs[start:i]))
			if kw, ok := keywords[word]; ok {
				emit(kw, word, startLine, startCol)
			} else {
				emit(IDENT, word, startLine, startCol)
			}
			continue
		}

		// Two-char operators before their one-char prefixes.
		if peek(1) == '=' && (ch == '=' || ch == '!' || ch == '<' || ch == '>') {
			op := string([]rune{ch, '='})
			emit(op, op, startLine, startCol)
			advance()
			advance()
			continue
		}

		switch ch {
		case '+', '-', '*', '/', '%', '=', '<', '>',
			'.', ',', ';', ':', '(', ')', '[', ']', '{', '}':
			emit(string(ch), string(ch), startLine, startCol)
		}
		advance()
	}

	emit(EOF, "", line, col)
	return out
}

// IsDigit reports whether r is an ASCII or Devanagari decimal digit.
func IsDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= '०' && r <= '९')
}

// NormalizeDigits maps Devanagari digits in s onto their ASCII counterparts.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '०' && r <= '९' {
			return '0' + (r - '०')
		}
		return r
	}, s)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || r >= identThreshold
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

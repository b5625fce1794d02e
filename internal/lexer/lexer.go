// Package lexer turns rift source text into a token stream.
//
// # Unicode and column positions
//
// Source is treated as UTF-8; "column" counts Unicode code points (runes)
// from the start of the line, not bytes — a multi-byte rune like Δ or 🚀
// still advances the column by exactly one, matching the convention used
// throughout this module's diagnostics.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/token"
)

// LexError is raised for unterminated strings/templates/comments and
// unrecognised characters.
type LexError struct {
	*diagnostics.Diagnostic
}

// Lexer is a one-shot tokenizer: Tokenize consumes the whole input and
// returns every token, including a trailing EOF.
type Lexer struct {
	filename string
	input    []rune
	pos      int
	line     int
	column   int
}

// New creates a Lexer over source. filename is used only for diagnostics.
func New(source, filename string) *Lexer {
	return &Lexer{
		filename: filename,
		input:    []rune(source),
		pos:      0,
		line:     1,
		column:   1,
	}
}

func (l *Lexer) errorf(format string, args ...any) *LexError {
	return &LexError{diagnostics.New(diagnostics.Lex, l.filename, diagnostics.Position{Line: l.line, Column: l.column}, format, args...)}
}

func (l *Lexer) current() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peek(offset int) rune {
	p := l.pos + offset
	if p >= len(l.input) {
		return 0
	}
	return l.input[p]
}

func (l *Lexer) peekString(n int) string {
	end := l.pos + n
	if end > len(l.input) {
		end = len(l.input)
	}
	return string(l.input[l.pos:end])
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.input) }

func (l *Lexer) advance() rune {
	ch := l.current()
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// Tokenize scans the entire input and returns the resulting token stream.
// The returned error, if any, is a *LexError.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var out []token.Token
	for !l.atEnd() {
		ch := l.current()

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
			continue

		case ch == '\n':
			out = append(out, l.makeToken(token.NEWLINE, "\n"))
			l.advance()
			continue

		case ch == '/' && l.peek(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return nil, err
			}
			continue

		case ch == '"' || ch == '\'':
			tok, err := l.readString(ch)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			continue

		case ch == '`':
			toks, err := l.readTemplateString()
			if err != nil {
				return nil, err
			}
			out = append(out, toks...)
			continue

		case unicode.IsDigit(ch):
			out = append(out, l.readNumber())
			continue

		case unicode.IsLetter(ch) || ch == '_':
			out = append(out, l.readIdentifier())
			continue

		default:
			tok, err := l.readOperator()
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			continue
		}
	}
	out = append(out, token.Token{Type: token.EOF, Line: l.line, Column: l.column})
	return out, nil
}

func (l *Lexer) makeToken(typ token.Type, lexeme string) token.Token {
	col := l.column - utf8.RuneCountInString(lexeme)
	if col < 1 {
		col = 1
	}
	return token.Token{Type: typ, Lexeme: lexeme, Line: l.line, Column: col}
}

func (l *Lexer) skipBlockComment() error {
	startLine, startCol := l.line, l.column
	l.advance() // /
	l.advance() // *
	for !l.atEnd() {
		if l.current() == '*' && l.peek(1) == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return &LexError{diagnostics.New(diagnostics.Lex, l.filename, diagnostics.Position{Line: startLine, Column: startCol}, "unterminated multi-line comment")}
}

func (l *Lexer) readString(quote rune) (token.Token, error) {
	startLine, startCol := l.line, l.column
	l.advance() // opening quote
	var sb strings.Builder

	for !l.atEnd() && l.current() != quote {
		if l.current() == '\\' {
			l.advance()
			esc := l.current()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\':
				sb.WriteRune('\\')
			case '0':
				sb.WriteRune(0)
			case quote:
				sb.WriteRune(quote)
			default:
				sb.WriteRune(esc)
			}
			l.advance()
			continue
		}
		sb.WriteRune(l.current())
		l.advance()
	}

	if l.atEnd() {
		return token.Token{}, &LexError{diagnostics.New(diagnostics.Lex, l.filename, diagnostics.Position{Line: startLine, Column: startCol}, "unterminated string")}
	}
	l.advance() // closing quote
	return token.Token{Type: token.STRING, Lexeme: sb.String(), Line: startLine, Column: startCol}, nil
}

// readTemplateString splits a backtick-delimited template string into
// literal STRING pieces and INTERP_START/.../INTERP_END bracketed
// sub-token runs: interpolation opens with the
// two-rune sequence "$@" and closes at the matching "#", with a private
// brace-depth counter so a stray "#" inside the expression (which would
// otherwise look like a block-close) is not mistaken for the terminator.
func (l *Lexer) readTemplateString() ([]token.Token, error) {
	var out []token.Token
	startLine, startCol := l.line, l.column
	l.advance() // opening backtick
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, token.Token{Type: token.STRING, Lexeme: lit.String(), Line: startLine, Column: startCol})
			lit.Reset()
		}
	}

	for !l.atEnd() && l.current() != '`' {
		if l.current() == '$' && l.peek(1) == '@' {
			flush()
			l.advance() // $
			l.advance() // @
			out = append(out, token.Token{Type: token.INTERP_START, Lexeme: "$@", Line: l.line, Column: l.column - 2})

			depth := 1
			interpStart := l.pos
			for !l.atEnd() && depth > 0 {
				switch l.current() {
				case '@':
					depth++
				case '#':
					depth--
					if depth == 0 {
						goto doneInterp
					}
				}
				l.advance()
			}
		doneInterp:
			inner := string(l.input[interpStart:l.pos])
			if strings.TrimSpace(inner) != "" {
				sub := New(inner, l.filename)
				subToks, err := sub.Tokenize()
				if err != nil {
					return nil, err
				}
				for _, t := range subToks {
					if t.Type != token.EOF {
						out = append(out, t)
					}
				}
			}
			if l.current() == '#' {
				out = append(out, token.Token{Type: token.INTERP_END, Lexeme: "#", Line: l.line, Column: l.column})
				l.advance()
			}
			startLine, startCol = l.line, l.column
			continue
		}

		if l.current() == '\\' {
			l.advance()
			esc := l.current()
			switch esc {
			case 'n':
				lit.WriteRune('\n')
			case 't':
				lit.WriteRune('\t')
			case 'r':
				lit.WriteRune('\r')
			case '\\':
				lit.WriteRune('\\')
			case '`':
				lit.WriteRune('`')
			case '$':
				lit.WriteRune('$')
			default:
				lit.WriteRune(esc)
			}
			l.advance()
			continue
		}

		lit.WriteRune(l.current())
		l.advance()
	}

	if l.atEnd() {
		return nil, &LexError{diagnostics.New(diagnostics.Lex, l.filename, diagnostics.Position{Line: startLine, Column: startCol}, "unterminated template string")}
	}
	flush()
	l.advance() // closing backtick
	return out, nil
}

func (l *Lexer) readNumber() token.Token {
	startCol := l.column
	var sb strings.Builder

	if l.current() == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		sb.WriteRune(l.advance())
		sb.WriteRune(l.advance())
		for isHexDigit(l.current()) || l.current() == '_' {
			if l.current() != '_' {
				sb.WriteRune(l.current())
			}
			l.advance()
		}
		return token.Token{Type: token.NUMBER, Lexeme: sb.String(), Line: l.line, Column: startCol}
	}

	if l.current() == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B') {
		sb.WriteRune(l.advance())
		sb.WriteRune(l.advance())
		for l.current() == '0' || l.current() == '1' || l.current() == '_' {
			if l.current() != '_' {
				sb.WriteRune(l.current())
			}
			l.advance()
		}
		return token.Token{Type: token.NUMBER, Lexeme: sb.String(), Line: l.line, Column: startCol}
	}

	for unicode.IsDigit(l.current()) || l.current() == '_' {
		if l.current() != '_' {
			sb.WriteRune(l.current())
		}
		l.advance()
	}

	if l.current() == '.' && l.peek(1) != '.' {
		sb.WriteRune(l.advance())
		for unicode.IsDigit(l.current()) || l.current() == '_' {
			if l.current() != '_' {
				sb.WriteRune(l.current())
			}
			l.advance()
		}
	}

	if l.current() == 'e' || l.current() == 'E' {
		sb.WriteRune(l.advance())
		if l.current() == '+' || l.current() == '-' {
			sb.WriteRune(l.advance())
		}
		for unicode.IsDigit(l.current()) {
			sb.WriteRune(l.advance())
		}
	}

	return token.Token{Type: token.NUMBER, Lexeme: sb.String(), Line: l.line, Column: startCol}
}

func isHexDigit(ch rune) bool {
	return unicode.IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func (l *Lexer) readIdentifier() token.Token {
	startCol := l.column
	var sb strings.Builder
	for unicode.IsLetter(l.current()) || unicode.IsDigit(l.current()) || l.current() == '_' {
		sb.WriteRune(l.current())
		l.advance()
	}
	text := sb.String()
	return token.Token{Type: token.LookupIdent(text), Lexeme: text, Line: l.line, Column: startCol}
}

var threeCharOps = map[string]token.Type{
	"...": token.SPREAD,
}

var twoCharOps = map[string]token.Type{
	"==": token.EQ,
	"!=": token.NE,
	"<=": token.LE,
	">=": token.GE,
	"**": token.POWER,
	"??": token.NULL_COALESCE,
	"?.": token.SAFE_NAV,
	"?~": token.SAFE_INDEX,
	"->": token.PIPELINE,
	"~>": token.ASYNC_PIPELINE,
	"=>": token.ARROW,
	"::": token.DOUBLE_COLON,
	"..": token.RANGE,
	"+=": token.PLUS_ASSIGN,
	"-=": token.MINUS_ASSIGN,
	"*=": token.STAR_ASSIGN,
	"/=": token.SLASH_ASSIGN,
}

var oneCharOps = map[rune]token.Type{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'<': token.LT,
	'>': token.GT,
	'=': token.ASSIGN,
	'(': token.LPAREN,
	')': token.RPAREN,
	'@': token.LBRACE,
	'#': token.RBRACE,
	'~': token.LBRACKET,
	'!': token.RBRACKET,
	',': token.COMMA,
	'.': token.DOT,
	':': token.COLON,
	';': token.SEMICOLON,
}

func (l *Lexer) readOperator() (token.Token, error) {
	startCol := l.column

	if typ, ok := threeCharOps[l.peekString(3)]; ok {
		lexeme := l.peekString(3)
		l.advance()
		l.advance()
		l.advance()
		return token.Token{Type: typ, Lexeme: lexeme, Line: l.line, Column: startCol}, nil
	}

	if typ, ok := twoCharOps[l.peekString(2)]; ok {
		lexeme := l.peekString(2)
		l.advance()
		l.advance()
		return token.Token{Type: typ, Lexeme: lexeme, Line: l.line, Column: startCol}, nil
	}

	ch := l.current()
	if typ, ok := oneCharOps[ch]; ok {
		l.advance()
		return token.Token{Type: typ, Lexeme: string(ch), Line: l.line, Column: startCol}, nil
	}

	return token.Token{}, l.errorf("unexpected character %q", ch)
}

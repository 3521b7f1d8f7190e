package lexer

import (
	"log/slog"
	"strings"

	"github.com/gospdx/gospdx/internal/types"
	"github.com/gospdx/gospdx/spdx"
)

// Config supplies the identifier predicates and tolerance switches used to
// classify fragments.
type Config struct {
	IsLicenseID            func(string) bool
	IsExceptionID          func(string) bool
	AllowUnknownLicenses   bool
	AllowUnknownExceptions bool
}

// Lexer tokenizes license expression text. It holds no state beyond its
// input, so a Lexer may be re-run and separate Lexers never interact.
type Lexer struct {
	source string
	cfg    Config
	types.Logger
}

// New returns a Lexer for the given expression text.
func New(source string, cfg Config, logger *slog.Logger) *Lexer {
	return &Lexer{
		source: source,
		cfg:    cfg,
		Logger: types.Logger{L: logger},
	}
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.String("text", tok.Text))
	}
}

// Tokenize splits the source into fragments and classifies each one.
// It stops at the first fragment that cannot be classified.
func (l *Lexer) Tokenize() ([]Token, error) {
	fragments := Split(l.source)
	tokens := make([]Token, 0, len(fragments))
	for _, frag := range fragments {
		tok, err := l.classify(frag)
		if err != nil {
			l.Log(slog.LevelDebug, "tokenization failed",
				slog.String("fragment", frag),
				slog.String("error", err.Error()))
			return nil, err
		}
		l.traceToken(tok)
		tokens = append(tokens, tok)
	}
	l.Log(slog.LevelDebug, "tokenization complete", slog.Int("tokens", len(tokens)))
	return tokens, nil
}

// Split surrounds every parenthesis with spaces and splits the result on
// runs of whitespace.
func Split(source string) []string {
	spaced := strings.NewReplacer("(", " ( ", ")", " ) ").Replace(source)
	return strings.Fields(spaced)
}

// classify assigns a kind to one fragment. The order of the checks is
// significant: keywords first, then the syntactic forms, then the
// predicates, then the tolerance switches.
func (l *Lexer) classify(frag string) (Token, error) {
	switch {
	case frag == "(":
		return NewToken(TokLParen, frag), nil
	case frag == ")":
		return NewToken(TokRParen, frag), nil
	case strings.EqualFold(frag, "and"):
		return NewToken(TokAnd, frag), nil
	case strings.EqualFold(frag, "or"):
		return NewToken(TokOr, frag), nil
	}

	lower := strings.ToLower(frag)
	switch {
	// Substring match: any fragment containing "with" is the keyword.
	case strings.Contains(lower, "with"):
		return NewToken(TokWith, frag), nil
	case strings.HasPrefix(lower, "licenseref"):
		return NewToken(TokLicenseRef, frag), nil
	case strings.HasPrefix(lower, "documentref") && strings.Contains(lower, ":licenseref"):
		return NewToken(TokLicenseRef, frag), nil
	case strings.HasSuffix(frag, "+"):
		return NewToken(TokLicenseID, frag), nil
	case l.cfg.IsLicenseID != nil && l.cfg.IsLicenseID(frag):
		return NewToken(TokLicenseID, frag), nil
	case l.cfg.IsExceptionID != nil && l.cfg.IsExceptionID(frag):
		return NewToken(TokExceptionID, frag), nil
	case !ValidChars(frag):
		return Token{}, spdx.NewError(spdx.KindInvalidCharacters, frag)
	case l.cfg.AllowUnknownExceptions:
		return NewToken(TokExceptionID, frag), nil
	case l.cfg.AllowUnknownLicenses:
		return NewToken(TokLicenseID, frag), nil
	}
	return Token{}, spdx.NewError(spdx.KindUnknownToken, frag)
}

// ValidChars reports whether s consists only of [A-Za-z0-9+.()-].
func ValidChars(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '+', c == '.', c == '(', c == ')', c == '-':
		default:
			return false
		}
	}
	return true
}

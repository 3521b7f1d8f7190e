// Package lexer provides tokenization for SPDX license expressions.
package lexer

// Token is a classified fragment of a license expression. Text keeps the
// original spelling; keywords are matched without regard to case.
type Token struct {
	Kind TokenKind
	Text string
}

// NewToken creates a new token.
func NewToken(kind TokenKind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// TokLicenseID is a license identifier, possibly ending in "+".
	TokLicenseID TokenKind = iota
	// TokLicenseRef is a "LicenseRef-..." or "DocumentRef-...:LicenseRef-..." identifier.
	TokLicenseRef
	// TokExceptionID is a license exception identifier.
	TokExceptionID
	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
	// TokWith is the WITH keyword.
	TokWith
	// TokAnd is the AND keyword.
	TokAnd
	// TokOr is the OR keyword.
	TokOr
)

var tokenNames = [...]string{
	TokLicenseID:   "LicenseId",
	TokLicenseRef:  "LicenseRef",
	TokExceptionID: "ExceptionId",
	TokLParen:      "LeftParen",
	TokRParen:      "RightParen",
	TokWith:        "With",
	TokAnd:         "And",
	TokOr:          "Or",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "Unknown"
}

// IsKeyword reports whether the kind is AND, OR or WITH.
func (k TokenKind) IsKeyword() bool {
	return k == TokWith || k == TokAnd || k == TokOr
}

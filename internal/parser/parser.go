// Package parser builds license expression trees from text.
//
// The grammar, with AND binding tighter than OR and both left-associative:
//
//	expression := orExpr
//	orExpr     := andExpr ( "OR" andExpr )*
//	andExpr    := unary ( "AND" unary )*
//	unary      := scoped | withExpr
//	withExpr   := simple ( "WITH" ExceptionId )?
//	simple     := LicenseId | LicenseRef
//	scoped     := "(" orExpr ")"
//
// Parsing stops at the first error; no partial tree is returned.
package parser

import (
	"log/slog"
	"strings"

	"github.com/gospdx/gospdx/expr"
	"github.com/gospdx/gospdx/internal/lexer"
	"github.com/gospdx/gospdx/internal/types"
	"github.com/gospdx/gospdx/spdx"
)

// Options relax identifier checking.
type Options struct {
	// AllowUnknownLicenses accepts license ids the predicate rejects.
	AllowUnknownLicenses bool
	// AllowUnknownExceptions accepts exception ids the predicate rejects.
	AllowUnknownExceptions bool
}

// Parser holds the cursor for a single parse. A Parser is not reused.
type Parser struct {
	tokens        []lexer.Token
	pos           int
	isLicenseID   func(string) bool
	isExceptionID func(string) bool
	opts          Options
	types.Logger
}

// Parse tokenizes and parses text. Both predicates are required.
// Pass nil for logger to disable logging.
func Parse(text string, isLicenseID, isExceptionID func(string) bool, opts Options, logger *slog.Logger) (expr.Expression, error) {
	if isLicenseID == nil {
		return nil, spdx.NewError(spdx.KindArgument, "license id predicate is nil")
	}
	if isExceptionID == nil {
		return nil, spdx.NewError(spdx.KindArgument, "exception id predicate is nil")
	}
	if strings.TrimSpace(text) == "" {
		return nil, spdx.NewError(spdx.KindEmptyExpression, "")
	}

	lex := lexer.New(text, lexer.Config{
		IsLicenseID:            isLicenseID,
		IsExceptionID:          isExceptionID,
		AllowUnknownLicenses:   opts.AllowUnknownLicenses,
		AllowUnknownExceptions: opts.AllowUnknownExceptions,
	}, types.Component(logger, "lexer"))
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, err
	}

	p := &Parser{
		tokens:        tokens,
		isLicenseID:   isLicenseID,
		isExceptionID: isExceptionID,
		opts:          opts,
		Logger:        types.Logger{L: logger},
	}
	e, err := p.parseOr()
	if err != nil {
		p.Log(slog.LevelDebug, "parse failed",
			slog.String("expression", text),
			slog.String("error", err.Error()))
		return nil, err
	}
	if !p.atEnd() {
		return nil, spdx.NewError(spdx.KindUnknownToken, p.peek().Text)
	}
	p.Log(slog.LevelDebug, "parsed expression", slog.String("expression", e.String()))
	return e, nil
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekNth(n int) (lexer.Token, bool) {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n], true
	}
	return lexer.Token{}, false
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return !p.atEnd() && p.peek().Kind == kind
}

// parseOr parses: andExpr ( "OR" andExpr )*
func (p *Parser) parseOr() (expr.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &expr.Or{Left: left, Right: right}
	}
	return left, nil
}

// parseAnd parses: unary ( "AND" unary )*
func (p *Parser) parseAnd() (expr.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokAnd) {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &expr.And{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (expr.Expression, error) {
	if !p.check(lexer.TokLParen) {
		return p.parseWith()
	}
	p.advance()
	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.atEnd() {
		return nil, spdx.NewError(spdx.KindUnexpectedEnd, "")
	}
	if !p.check(lexer.TokRParen) {
		return nil, spdx.NewError(spdx.KindUnknownToken, p.peek().Text)
	}
	p.advance()
	return &expr.Scoped{Inner: inner}, nil
}

// parseWith parses a simple expression and an optional exception. WITH
// not followed by an exception id is left in the stream.
func (p *Parser) parseWith() (expr.Expression, error) {
	simple, err := p.parseSimple()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.TokWith) {
		if next, ok := p.peekNth(1); ok && next.Kind == lexer.TokExceptionID {
			p.advance()
			p.advance()
			return &expr.With{Expr: simple, ExceptionID: next.Text}, nil
		}
	}
	return simple, nil
}

func (p *Parser) parseSimple() (expr.Expression, error) {
	if p.atEnd() {
		return nil, spdx.NewError(spdx.KindUnexpectedEnd, "")
	}
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokLicenseRef:
		p.advance()
		return &expr.LicenseReference{Ref: tok.Text}, nil
	case lexer.TokLicenseID:
		p.advance()
		return p.licenseID(tok.Text)
	case lexer.TokExceptionID:
		// With unknown licenses allowed, a fragment the lexer could only
		// file as an unknown exception stands for an unknown license.
		if p.opts.AllowUnknownLicenses && !p.isExceptionID(tok.Text) {
			p.advance()
			return &expr.SimpleLicense{ID: tok.Text}, nil
		}
	}
	return nil, spdx.NewError(spdx.KindUnknownToken, tok.Text)
}

func (p *Parser) licenseID(text string) (expr.Expression, error) {
	id, orLater := strings.CutSuffix(text, "+")
	if id == "" || (!p.isLicenseID(id) && !p.opts.AllowUnknownLicenses) {
		return nil, spdx.NewError(spdx.KindInvalidLicenseID, text)
	}
	if p.TraceEnabled() {
		p.Trace("license id", slog.String("id", id), slog.Bool("orLater", orLater))
	}
	return &expr.SimpleLicense{ID: id, OrLater: orLater}, nil
}

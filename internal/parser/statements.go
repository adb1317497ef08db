package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.DEF:
		return p.parseMethodDefinition(false)
	case token.STATIC:
		if !p.expectPeek(token.DEF) {
			return nil
		}
		return p.parseMethodDefinition(true)
	case token.TYPE:
		return p.parseTypeDeclaration()
	case token.MODULE:
		return p.parseModuleDeclaration()
	case token.INCLUDE:
		tok := p.curToken
		p.nextToken()
		return &ast.IncludeStatement{Token: tok, Module: p.parseExpression(LOWEST)}
	case token.EXTEND:
		tok := p.curToken
		p.nextToken()
		return &ast.ExtendStatement{Token: tok, Module: p.parseExpression(LOWEST)}
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.SEMICOLON) ||
		p.peekTokenIs(token.END) || p.peekTokenIs(token.EOF) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

// parseBody consumes statements until one of the terminator tokens is the
// current token. The terminator is left as the current token.
func (p *Parser) parseBody(terminators ...token.Type) *ast.Block {
	block := &ast.Block{Token: p.curToken}

	isTerm := func() bool {
		for _, t := range terminators {
			if p.curTokenIs(t) {
				return true
			}
		}
		return p.curTokenIs(token.EOF)
	}

	p.skipSeparators()
	for !isTerm() {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
			p.nextToken()
		} else {
			// Error recovery: resynchronize at the next statement boundary.
			// A terminator reached mid-statement belongs to this block, so
			// it must stay the current token for the loop check.
			for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.SEMICOLON) && !isTerm() {
				p.nextToken()
			}
		}
		p.skipSeparators()
	}

	if p.curTokenIs(token.EOF) {
		p.errorf(diagnostics.ErrP001, p.curToken, "unexpected end of input, expected %s", terminators[0])
	}
	return block
}

// parseMethodDefinition parses: def name(params) body end
// The parameter list may hold one *splat and a trailing &block parameter;
// parentheses are optional for a zero-parameter definition.
func (p *Parser) parseMethodDefinition(static bool) *ast.MethodDefinition {
	md := &ast.MethodDefinition{Token: p.curToken, SplatIndex: -1, Static: static}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	md.Name = p.curToken.Literal

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		params, splat, blockParam, ok := p.parseParams()
		if !ok {
			return nil
		}
		md.Params, md.SplatIndex, md.BlockParam = params, splat, blockParam
	}

	p.nextToken()
	md.Body = p.parseBody(token.END)
	return md
}

// parseParams parses a parenthesized parameter list; the current token is
// the opening paren on entry and the closing paren on exit.
func (p *Parser) parseParams() ([]*ast.Param, int, string, bool) {
	var params []*ast.Param
	splatIndex := -1
	blockParam := ""

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, splatIndex, blockParam, true
	}

	for {
		p.skipPeekNewlines()
		p.nextToken()

		switch p.curToken.Type {
		case token.STAR:
			if !p.expectPeek(token.IDENT) {
				return nil, 0, "", false
			}
			if splatIndex >= 0 {
				p.errorf(diagnostics.ErrP003, p.curToken, "multiple splat parameters")
				return nil, 0, "", false
			}
			splatIndex = len(params)
			params = append(params, &ast.Param{Name: p.curToken.Literal})
		case token.AMP:
			if !p.expectPeek(token.IDENT) {
				return nil, 0, "", false
			}
			blockParam = p.curToken.Literal
			if !p.expectPeek(token.RPAREN) {
				return nil, 0, "", false
			}
			return params, splatIndex, blockParam, true
		case token.IDENT:
			params = append(params, &ast.Param{Name: p.curToken.Literal})
		default:
			p.errorf(diagnostics.ErrP003, p.curToken, "unexpected %q in parameter list", p.curToken.Lexeme)
			return nil, 0, "", false
		}

		p.skipPeekNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil, 0, "", false
		}
		return params, splatIndex, blockParam, true
	}
}

// parseTypeDeclaration parses: type Name < Super body end
func (p *Parser) parseTypeDeclaration() *ast.TypeDeclaration {
	td := &ast.TypeDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	td.Name = p.curToken.Literal

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		td.Super = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}

	p.nextToken()
	td.Body = p.parseBody(token.END)
	return td
}

// parseModuleDeclaration parses: module Name body end
func (p *Parser) parseModuleDeclaration() *ast.ModuleDeclaration {
	md := &ast.ModuleDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	md.Name = p.curToken.Literal

	p.nextToken()
	md.Body = p.parseBody(token.END)
	return md
}

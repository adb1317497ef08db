package parser

import (
	"strconv"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIvar() ast.Expression {
	return &ast.IvarExpression{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseSelfExpression() ast.Expression {
	return &ast.SelfExpression{Token: p.curToken}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorf(diagnostics.ErrP001, p.curToken, "could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(diagnostics.ErrP001, p.curToken, "could not parse %q as float", p.curToken.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseSymbolLiteral() ast.Expression {
	return &ast.SymbolLiteral{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curToken, Op: p.curToken.Lexeme}
	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{Token: p.curToken, Op: p.curToken.Lexeme, Left: left}
	precedence := p.curPrecedence()
	p.skipPeekNewlines()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

// parseAssignExpression handles name = v, @ivar = v and recv[k] = v.
// Assignment is right-associative.
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(ASSIGNMENT - 1)

	switch target := left.(type) {
	case *ast.Identifier:
		return &ast.AssignExpression{Token: tok, Name: target.Value, Value: value}
	case *ast.IvarExpression:
		return &ast.IvarAssignExpression{Token: tok, Name: target.Name, Value: value}
	case *ast.IndexExpression:
		return &ast.IndexAssignExpression{Token: tok, Receiver: target.Receiver, Index: target.Index, Value: value}
	default:
		p.errorf(diagnostics.ErrP001, tok, "invalid assignment target")
		return nil
	}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curToken, Receiver: left}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}
	list.Elements = p.parseExpressionList(token.RBRACKET)
	return list
}

// parseExpressionList parses a comma-separated list terminated by end;
// the current token is the opening delimiter on entry, end on exit.
func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression

	p.skipPeekNewlines()
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.skipPeekNewlines()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	p.skipPeekNewlines()
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

// parseMapLiteral parses {k => v, ...}, preserving entry order.
func (p *Parser) parseMapLiteral() ast.Expression {
	m := &ast.MapLiteral{Token: p.curToken}

	p.skipPeekNewlines()
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return m
	}

	for {
		p.skipPeekNewlines()
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.ARROW) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		m.Keys = append(m.Keys, key)
		m.Values = append(m.Values, value)

		p.skipPeekNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return m
	}
}

// parseMethodCall parses recv.m, recv.m(args) and an optional trailing
// block: recv.m(args) { |k, v| ... }.
func (p *Parser) parseMethodCall(left ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Receiver: left}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	call.Method = p.curToken.Literal

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		call.Args = p.parseExpressionList(token.RPAREN)
	}
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		call.Block = p.parseBlockLiteral()
	}
	return call
}

// parseBareCall parses name(args) with no receiver.
func (p *Parser) parseBareCall(left ast.Expression) ast.Expression {
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errorf(diagnostics.ErrP001, p.curToken, "expression is not callable")
		return nil
	}
	call := &ast.CallExpression{Token: p.curToken, Method: ident.Value}
	call.Args = p.parseExpressionList(token.RPAREN)
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		call.Block = p.parseBlockLiteral()
	}
	return call
}

// parseBlockLiteral parses { |params| body } with the current token on
// the opening brace.
func (p *Parser) parseBlockLiteral() *ast.FunctorLiteral {
	fl := &ast.FunctorLiteral{Token: p.curToken, SplatIndex: -1, IsBlock: true}

	if p.peekTokenIs(token.PIPE) {
		p.nextToken()
		for {
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			fl.Params = append(fl.Params, &ast.Param{Name: p.curToken.Literal})
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if !p.expectPeek(token.PIPE) {
			return nil
		}
	}

	p.nextToken()
	fl.Body = p.parseBody(token.RBRACE)
	return fl
}

// parseFnLiteral parses fn(params) body end — an anonymous closure.
func (p *Parser) parseFnLiteral() ast.Expression {
	fl := &ast.FunctorLiteral{Token: p.curToken, SplatIndex: -1}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		params, splat, blockParam, ok := p.parseParams()
		if !ok {
			return nil
		}
		fl.Params, fl.SplatIndex, fl.BlockParam = params, splat, blockParam
	}

	p.nextToken()
	fl.Body = p.parseBody(token.END)
	return fl
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curToken}

	p.nextToken()
	expr.Cond = p.parseExpression(LOWEST)
	p.nextToken()
	expr.Then = p.parseBody(token.ELSIF, token.ELSE, token.END)

	switch p.curToken.Type {
	case token.ELSIF:
		// Desugar elsif into a nested if in the else branch.
		nested := p.parseIfExpression()
		expr.Else = &ast.Block{
			Token:      expr.Token,
			Statements: []ast.Statement{&ast.ExpressionStatement{Token: expr.Token, Expression: nested}},
		}
	case token.ELSE:
		p.nextToken()
		expr.Else = p.parseBody(token.END)
	}
	return expr
}

func (p *Parser) parseWhileExpression() ast.Expression {
	expr := &ast.WhileExpression{Token: p.curToken}

	p.nextToken()
	expr.Cond = p.parseExpression(LOWEST)
	p.nextToken()
	expr.Body = p.parseBody(token.END)
	return expr
}

package ast

import (
	"github.com/rill-lang/rill/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Block is a sequence of statements evaluated in order; the value of the
// block is the value of its last statement.
type Block struct {
	Token      token.Token
	Statements []Statement
}

func (b *Block) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token { return b.Token }

// ExpressionStatement wraps an expression appearing in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// ReturnStatement returns early from the enclosing functor body.
// return expr / return
type ReturnStatement struct {
	Token token.Token
	Value Expression // may be nil
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// Param is a formal parameter of a method definition or functor literal.
type Param struct {
	Name string
}

// MethodDefinition defines (or extends with another clause) a named functor.
// def name(a, b, *rest, &blk) ... end
type MethodDefinition struct {
	Token      token.Token
	Name       string
	Params     []*Param
	SplatIndex int    // index into Params of the splat parameter, -1 if none
	BlockParam string // name of the &block parameter, "" if none
	Body       *Block
	Static     bool // static def inside a type body
}

func (md *MethodDefinition) statementNode()        {}
func (md *MethodDefinition) TokenLiteral() string  { return md.Token.Lexeme }
func (md *MethodDefinition) GetToken() token.Token { return md.Token }

// TypeDeclaration declares a type, optionally with a supertype.
// type Name < Super ... end
type TypeDeclaration struct {
	Token token.Token
	Name  string
	Super *Identifier // nil when no supertype clause
	Body  *Block
}

func (td *TypeDeclaration) statementNode()        {}
func (td *TypeDeclaration) TokenLiteral() string  { return td.Token.Lexeme }
func (td *TypeDeclaration) GetToken() token.Token { return td.Token }

// ModuleDeclaration declares a module namespace.
// module Name ... end
type ModuleDeclaration struct {
	Token token.Token
	Name  string
	Body  *Block
}

func (md *ModuleDeclaration) statementNode()        {}
func (md *ModuleDeclaration) TokenLiteral() string  { return md.Token.Lexeme }
func (md *ModuleDeclaration) GetToken() token.Token { return md.Token }

// IncludeStatement mixes a module into the enclosing type's instance
// dispatch chain (or into the enclosing module's own chain).
type IncludeStatement struct {
	Token  token.Token
	Module Expression
}

func (is *IncludeStatement) statementNode()        {}
func (is *IncludeStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IncludeStatement) GetToken() token.Token { return is.Token }

// ExtendStatement mixes a module into the enclosing type's static
// dispatch chain.
type ExtendStatement struct {
	Token  token.Token
	Module Expression
}

func (es *ExtendStatement) statementNode()        {}
func (es *ExtendStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExtendStatement) GetToken() token.Token { return es.Token }

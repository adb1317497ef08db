package ast

import (
	"github.com/rill-lang/rill/internal/token"
)

// Identifier references a name resolved through the scope stack.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IvarExpression reads an instance variable of the current receiver.
// @name
type IvarExpression struct {
	Token token.Token
	Name  string
}

func (ie *IvarExpression) expressionNode()       {}
func (ie *IvarExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IvarExpression) GetToken() token.Token { return ie.Token }

// AssignExpression binds or mutates a local name.
// name = value
type AssignExpression struct {
	Token token.Token
	Name  string
	Value Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

// IvarAssignExpression writes an instance variable of the current receiver.
// @name = value
type IvarAssignExpression struct {
	Token token.Token
	Name  string
	Value Expression
}

func (ia *IvarAssignExpression) expressionNode()       {}
func (ia *IvarAssignExpression) TokenLiteral() string  { return ia.Token.Lexeme }
func (ia *IvarAssignExpression) GetToken() token.Token { return ia.Token }

// IndexExpression desugars to an "[]" dispatch on the receiver.
type IndexExpression struct {
	Token    token.Token
	Receiver Expression
	Index    Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// IndexAssignExpression desugars to an "[]=" dispatch on the receiver.
type IndexAssignExpression struct {
	Token    token.Token
	Receiver Expression
	Index    Expression
	Value    Expression
}

func (ia *IndexAssignExpression) expressionNode()       {}
func (ia *IndexAssignExpression) TokenLiteral() string  { return ia.Token.Lexeme }
func (ia *IndexAssignExpression) GetToken() token.Token { return ia.Token }

// CallExpression invokes a method on a receiver, or a bare name.
// recv.m(args) { |p| body } / m(args) / m
type CallExpression struct {
	Token    token.Token
	Receiver Expression // nil for a bare call
	Method   string
	Args     []Expression
	Block    *FunctorLiteral // nil when no block attached
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// BinaryExpression applies an infix operator; except for && and ||, this
// desugars to a method dispatch on the left operand.
type BinaryExpression struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// UnaryExpression applies a prefix operator (! or -).
type UnaryExpression struct {
	Token   token.Token
	Op      string
	Operand Expression
}

func (ue *UnaryExpression) expressionNode()       {}
func (ue *UnaryExpression) TokenLiteral() string  { return ue.Token.Lexeme }
func (ue *UnaryExpression) GetToken() token.Token { return ue.Token }

// IfExpression evaluates Then when the condition is truthy, otherwise
// Else (which may itself wrap another IfExpression for elsif chains).
type IfExpression struct {
	Token token.Token
	Cond  Expression
	Then  *Block
	Else  *Block // nil when no else branch
}

func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

// WhileExpression loops while the condition is truthy; its value is nil.
type WhileExpression struct {
	Token token.Token
	Cond  Expression
	Body  *Block
}

func (we *WhileExpression) expressionNode()       {}
func (we *WhileExpression) TokenLiteral() string  { return we.Token.Lexeme }
func (we *WhileExpression) GetToken() token.Token { return we.Token }

// FunctorLiteral is an anonymous closure: fn(a, b) ... end, or a block
// attached to a call: { |a, b| ... }.
type FunctorLiteral struct {
	Token      token.Token
	Params     []*Param
	SplatIndex int
	BlockParam string
	Body       *Block
	IsBlock    bool // true for call-site blocks
}

func (fl *FunctorLiteral) expressionNode()       {}
func (fl *FunctorLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FunctorLiteral) GetToken() token.Token { return fl.Token }

// SelfExpression references the current receiver.
// this
type SelfExpression struct {
	Token token.Token
}

func (se *SelfExpression) expressionNode()       {}
func (se *SelfExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SelfExpression) GetToken() token.Token { return se.Token }

// Literals

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

type NilLiteral struct {
	Token token.Token
}

func (nl *NilLiteral) expressionNode()       {}
func (nl *NilLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NilLiteral) GetToken() token.Token { return nl.Token }

type SymbolLiteral struct {
	Token token.Token
	Name  string
}

func (sl *SymbolLiteral) expressionNode()       {}
func (sl *SymbolLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *SymbolLiteral) GetToken() token.Token { return sl.Token }

type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// MapLiteral preserves the written entry order; Keys and Values are
// parallel slices.
type MapLiteral struct {
	Token  token.Token
	Keys   []Expression
	Values []Expression
}

func (ml *MapLiteral) expressionNode()       {}
func (ml *MapLiteral) TokenLiteral() string  { return ml.Token.Lexeme }
func (ml *MapLiteral) GetToken() token.Token { return ml.Token }

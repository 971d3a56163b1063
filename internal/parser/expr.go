package parser

import (
	"fmt"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/token"
	"github.com/maciek-pioro/compiler/internal/types"
)

// binaryLevel is one left-associative precedence level.
type binaryLevel struct {
	kind ast.Kind
	ops  map[token.Kind]ast.Op
}

// levels, loosest first; bitwise binds tighter than multiplication.
var levels = []binaryLevel{
	{ast.KindLogical, map[token.Kind]ast.Op{token.AndAnd: ast.OpAnd, token.OrOr: ast.OpOr}},
	{ast.KindRelation, map[token.Kind]ast.Op{
		token.EqEq: ast.OpEq, token.BangEq: ast.OpNe,
		token.Lt: ast.OpLt, token.LtEq: ast.OpLe, token.Gt: ast.OpGt, token.GtEq: ast.OpGe,
	}},
	{ast.KindMath, map[token.Kind]ast.Op{token.Plus: ast.OpAdd, token.Minus: ast.OpSub}},
	{ast.KindMath, map[token.Kind]ast.Op{token.Star: ast.OpMul, token.Slash: ast.OpDiv}},
	{ast.KindBitwise, map[token.Kind]ast.Op{token.Pipe: ast.OpBitOr, token.Amp: ast.OpBitAnd}},
}

func (p *Parser) parseExpr() (ast.NodeID, bool) {
	// assign := ident "=" assign
	if p.at(token.Ident) && p.peekN(1).Kind == token.Assign {
		name := p.advance()
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoNodeID, false
		}
		return p.tree.NewAssign(name.Text, value, p.line(name)), true
	}
	expr, ok := p.parseLevel(0)
	if ok && p.at(token.Assign) {
		p.report(diag.SynAssignToNonIdent, p.peek(), "only a variable can be assigned to")
		return ast.NoNodeID, false
	}
	return expr, ok
}

func (p *Parser) parseLevel(i int) (ast.NodeID, bool) {
	if i == len(levels) {
		return p.parseUnary()
	}
	lvl := levels[i]
	left, ok := p.parseLevel(i + 1)
	if !ok {
		return ast.NoNodeID, false
	}
	for {
		op, found := lvl.ops[p.peek().Kind]
		if !found {
			return left, true
		}
		tok := p.advance()
		right, ok := p.parseLevel(i + 1)
		if !ok {
			return ast.NoNodeID, false
		}
		line := p.line(tok)
		switch lvl.kind {
		case ast.KindLogical:
			left = p.tree.NewLogical(op, left, right, line)
		case ast.KindRelation:
			left = p.tree.NewRelation(op, left, right, line)
		case ast.KindBitwise:
			left = p.tree.NewBitwise(op, left, right, line)
		default:
			left = p.tree.NewMath(op, left, right, line)
		}
	}
}

func (p *Parser) parseUnary() (ast.NodeID, bool) {
	tok := p.peek()
	var op ast.Op
	switch tok.Kind {
	case token.Minus:
		op = ast.OpNeg
	case token.Bang:
		op = ast.OpNot
	case token.Tilde:
		op = ast.OpBitNot
	case token.LParen:
		if target, ok := typeOf(p.peekN(1).Kind); ok {
			return p.parseCast(target)
		}
		return p.parsePrimary()
	default:
		return p.parsePrimary()
	}
	p.advance()
	operand, ok := p.parseUnary()
	if !ok {
		return ast.NoNodeID, false
	}
	return p.tree.NewUnary(op, operand, p.line(tok)), true
}

// parseCast: "(" type ")" unary
func (p *Parser) parseCast(target types.Type) (ast.NodeID, bool) {
	open := p.advance()
	p.advance()
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' after cast type"); !ok {
		return ast.NoNodeID, false
	}
	operand, ok := p.parseUnary()
	if !ok {
		return ast.NoNodeID, false
	}
	return p.tree.NewCast(target, operand, p.line(open)), true
}

func (p *Parser) parsePrimary() (ast.NodeID, bool) {
	tok := p.peek()
	line := p.line(tok)
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.tree.NewLiteral(types.Integer, tok.Text, line), true
	case token.DoubleLit:
		p.advance()
		return p.tree.NewLiteral(types.Double, tok.Text, line), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.tree.NewLiteral(types.Boolean, tok.Text, line), true
	case token.Ident:
		p.advance()
		return p.tree.NewIdentifier(tok.Text, line), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoNodeID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, fmt.Sprintf("')' to close '(' on line %d", line)); !ok {
			return ast.NoNodeID, false
		}
		return inner, true
	case token.StringLit:
		p.report(diag.SynUnexpectedToken, tok, "string literals can only be written")
		p.advance()
		return ast.NoNodeID, false
	case token.Invalid:
		// already reported by the lexer
		p.advance()
		return ast.NoNodeID, false
	default:
		p.report(diag.SynExpectExpression, tok, fmt.Sprintf("expected expression, got %s", describe(tok)))
		return ast.NoNodeID, false
	}
}

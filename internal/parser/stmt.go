package parser

import (
	"fmt"
	"strings"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/token"
	"github.com/maciek-pioro/compiler/internal/types"
)

func typeOf(k token.Kind) (types.Type, bool) {
	switch k {
	case token.KwInt:
		return types.Integer, true
	case token.KwDouble:
		return types.Double, true
	case token.KwBool:
		return types.Boolean, true
	default:
		return types.None, false
	}
}

// parseScope parses "{ declaration* statement* }" and returns the
// DeclarationList and InstructionList.
func (p *Parser) parseScope() (decls, body ast.NodeID, ok bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{'")
	if !ok {
		return ast.NoNodeID, ast.NoNodeID, false
	}
	var (
		vars  []ast.NodeID
		stmts []ast.NodeID
	)
	for !p.atOr(token.RBrace, token.EOF) && !p.enough() {
		if p.peek().Kind.IsTypeKeyword() {
			if len(stmts) > 0 {
				p.report(diag.SynDeclAfterStmt, p.peek(), "declarations must precede statements in a block")
			}
			vars = append(vars, p.parseDeclaration()...)
			continue
		}
		if stmt, ok := p.parseStatement(); ok {
			stmts = append(stmts, stmt)
		} else {
			p.resync()
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, fmt.Sprintf("'}' to close the block opened on line %d", p.line(open))); !ok {
		return ast.NoNodeID, ast.NoNodeID, false
	}
	line := p.line(open)
	return p.tree.NewDeclarationList(vars, line), p.tree.NewInstructionList(stmts, line), true
}

// parseDeclaration: type ident ("," ident)* ";"
func (p *Parser) parseDeclaration() []ast.NodeID {
	typ, _ := typeOf(p.advance().Kind)
	var vars []ast.NodeID
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "variable name")
		if !ok {
			p.resync()
			return vars
		}
		vars = append(vars, p.tree.NewVariable(name.Text, typ, p.line(name)))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after declaration"); !ok {
		p.resync()
	}
	return vars
}

func (p *Parser) parseStatement() (ast.NodeID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		decls, body, ok := p.parseScope()
		if !ok {
			return ast.NoNodeID, false
		}
		return p.tree.NewBlock(decls, body, p.line(tok)), true
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwRead:
		return p.parseRead()
	case token.KwWrite:
		return p.parseWrite()
	case token.KwReturn:
		p.advance()
		if !p.semicolon() {
			return ast.NoNodeID, false
		}
		return p.tree.NewReturn(p.line(tok)), true
	default:
		expr, ok := p.parseExpr()
		if !ok || !p.semicolon() {
			return ast.NoNodeID, false
		}
		return expr, true
	}
}

func (p *Parser) semicolon() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")
	return ok
}

func (p *Parser) parseCondition() (ast.NodeID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'('"); !ok {
		return ast.NoNodeID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoNodeID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
		return ast.NoNodeID, false
	}
	return cond, true
}

func (p *Parser) parseIf() (ast.NodeID, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoNodeID, false
	}
	then, ok := p.parseStatement()
	if !ok {
		return ast.NoNodeID, false
	}
	els := ast.NoNodeID
	if p.at(token.KwElse) {
		p.advance()
		if els, ok = p.parseStatement(); !ok {
			return ast.NoNodeID, false
		}
	}
	return p.tree.NewIf(cond, then, els, p.line(kw)), true
}

func (p *Parser) parseWhile() (ast.NodeID, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoNodeID, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoNodeID, false
	}
	return p.tree.NewWhile(cond, body, p.line(kw)), true
}

// hexSuffix parses an optional ", hex".
func (p *Parser) hexSuffix() bool {
	if !p.at(token.Comma) {
		return false
	}
	p.advance()
	if _, ok := p.expect(token.KwHex, diag.SynUnexpectedToken, "'hex'"); !ok {
		return false
	}
	return true
}

func (p *Parser) parseRead() (ast.NodeID, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "variable name after 'read'")
	if !ok {
		return ast.NoNodeID, false
	}
	hex := p.hexSuffix()
	if !p.semicolon() {
		return ast.NoNodeID, false
	}
	return p.tree.NewRead(name.Text, hex, p.line(kw)), true
}

func (p *Parser) parseWrite() (ast.NodeID, bool) {
	kw := p.advance()
	var value ast.NodeID
	if p.at(token.StringLit) {
		str := p.advance()
		value = p.tree.NewString(unquote(str.Text), p.line(str))
		if p.at(token.Comma) {
			p.report(diag.SynHexNotAllowedHere, p.peek(), "a string cannot be written in hex")
			return ast.NoNodeID, false
		}
	} else {
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoNodeID, false
		}
		value = expr
	}
	hex := p.hexSuffix()
	if !p.semicolon() {
		return ast.NoNodeID, false
	}
	return p.tree.NewWrite(value, hex, p.line(kw)), true
}

func unquote(text string) string {
	return strings.TrimSuffix(strings.TrimPrefix(text, `"`), `"`)
}

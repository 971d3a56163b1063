package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	KwProgram // program
	KwIf      // if
	KwElse    // else
	KwWhile   // while
	KwRead    // read
	KwWrite   // write
	KwReturn  // return
	KwInt     // int
	KwDouble  // double
	KwBool    // bool
	KwTrue    // true
	KwFalse   // false
	KwHex     // hex

	IntLit    // 42, 0x2A
	DoubleLit // 4.2
	StringLit // "text"

	Assign    // =
	OrOr      // ||
	AndAnd    // &&
	Pipe      // |
	Amp       // &
	EqEq      // ==
	BangEq    // !=
	Gt        // >
	GtEq      // >=
	Lt        // <
	LtEq      // <=
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Bang      // !
	Tilde     // ~
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Semicolon // ;
	Comma     // ,
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "end of file",
	Ident:     "identifier",
	KwProgram: "'program'",
	KwIf:      "'if'",
	KwElse:    "'else'",
	KwWhile:   "'while'",
	KwRead:    "'read'",
	KwWrite:   "'write'",
	KwReturn:  "'return'",
	KwInt:     "'int'",
	KwDouble:  "'double'",
	KwBool:    "'bool'",
	KwTrue:    "'true'",
	KwFalse:   "'false'",
	KwHex:     "'hex'",
	IntLit:    "integer literal",
	DoubleLit: "double literal",
	StringLit: "string literal",
	Assign:    "'='",
	OrOr:      "'||'",
	AndAnd:    "'&&'",
	Pipe:      "'|'",
	Amp:       "'&'",
	EqEq:      "'=='",
	BangEq:    "'!='",
	Gt:        "'>'",
	GtEq:      "'>='",
	Lt:        "'<'",
	LtEq:      "'<='",
	Plus:      "'+'",
	Minus:     "'-'",
	Star:      "'*'",
	Slash:     "'/'",
	Bang:      "'!'",
	Tilde:     "'~'",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
	Semicolon: "';'",
	Comma:     "','",
}

// String returns the form used in diagnostics ("'while'", "identifier").
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsTypeKeyword reports whether k names a declarable type.
func (k Kind) IsTypeKeyword() bool {
	return k == KwInt || k == KwDouble || k == KwBool
}

// IsRelational reports whether k is one of the comparison operators.
func (k Kind) IsRelational() bool {
	switch k {
	case EqEq, BangEq, Gt, GtEq, Lt, LtEq:
		return true
	default:
		return false
	}
}

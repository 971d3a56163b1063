package token

var keywords = map[string]Kind{
	"program": KwProgram,
	"if":      KwIf,
	"else":    KwElse,
	"while":   KwWhile,
	"read":    KwRead,
	"write":   KwWrite,
	"return":  KwReturn,
	"int":     KwInt,
	"double":  KwDouble,
	"bool":    KwBool,
	"true":    KwTrue,
	"false":   KwFalse,
	"hex":     KwHex,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые, только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

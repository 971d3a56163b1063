package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexBadNumber           Code = 1003
	LexBadEscape           Code = 1004
	LexTokenTooLong        Code = 1005
	LexUnterminatedComment Code = 1006

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynExpectType        Code = 2005
	SynUnclosedParen     Code = 2006
	SynUnclosedBrace     Code = 2007
	SynExpectProgram     Code = 2008
	SynTrailingInput     Code = 2009
	SynDeclAfterStmt     Code = 2010
	SynAssignToNonIdent  Code = 2011
	SynHexNotAllowedHere Code = 2012

	// Семантические
	SemaInfo                   Code = 3000
	SemaError                  Code = 3001
	SemaIllegalConversion      Code = 3002
	SemaDuplicateDeclaration   Code = 3003
	SemaUndeclaredIdentifier   Code = 3004
	SemaInvalidBooleanOperator Code = 3005
	SemaInvalidReadTarget      Code = 3006
	SemaInvalidHexTarget       Code = 3007
	SemaInvalidHexWriteTarget  Code = 3008
	SemaNonBooleanCondition    Code = 3009
	SemaIntLiteralOutOfRange   Code = 3010
	SemaMalformedTree          Code = 3011

	// I/O
	IOLoadFileError  Code = 4000
	IOWriteFileError Code = 4001

	// Проектные
	ProjInfo              Code = 5000
	ProjManifestInvalid   Code = 5001
	ProjVersionMismatch   Code = 5002
	ProjNoSources         Code = 5003
	ProjDuplicateArtifact Code = 5004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                "Unknown error",
		LexInfo:                    "Lexical information",
		LexUnknownChar:             "Unknown character",
		LexUnterminatedString:      "Unterminated string literal",
		LexBadNumber:               "Malformed number literal",
		LexBadEscape:               "Unknown escape sequence",
		LexTokenTooLong:            "Token too long",
		LexUnterminatedComment:     "Unterminated block comment",
		SynInfo:                    "Syntax information",
		SynUnexpectedToken:         "Unexpected token",
		SynExpectSemicolon:         "Missing semicolon",
		SynExpectIdentifier:        "Expected identifier",
		SynExpectExpression:        "Expected expression",
		SynExpectType:              "Expected type",
		SynUnclosedParen:           "Unclosed parenthesis",
		SynUnclosedBrace:           "Unclosed brace",
		SynExpectProgram:           "Expected 'program'",
		SynTrailingInput:           "Unexpected input after program",
		SynDeclAfterStmt:           "Declaration after statement",
		SynAssignToNonIdent:        "Assignment target is not a variable",
		SynHexNotAllowedHere:       "'hex' is not allowed here",
		SemaInfo:                   "Semantic information",
		SemaError:                  "Semantic error",
		SemaIllegalConversion:      "Illegal conversion",
		SemaDuplicateDeclaration:   "Duplicate declaration",
		SemaUndeclaredIdentifier:   "Undeclared identifier",
		SemaInvalidBooleanOperator: "Invalid operator for boolean operands",
		SemaInvalidReadTarget:      "Invalid read target",
		SemaInvalidHexTarget:       "Hex read requires an int variable",
		SemaInvalidHexWriteTarget:  "Hex write requires an int operand",
		SemaNonBooleanCondition:    "Condition is not boolean",
		SemaIntLiteralOutOfRange:   "Integer literal out of range",
		SemaMalformedTree:          "Malformed syntax tree",
		IOLoadFileError:            "I/O load file error",
		IOWriteFileError:           "I/O write file error",
		ProjInfo:                   "Project information",
		ProjManifestInvalid:        "Invalid project manifest",
		ProjVersionMismatch:        "Compiler version does not satisfy manifest",
		ProjNoSources:              "No source files",
		ProjDuplicateArtifact:      "Two sources produce the same artifact",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

// ParseID is the inverse of Code.ID.
func ParseID(id string) (Code, bool) {
	for c := range codeDescription {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

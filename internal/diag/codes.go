package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadEscape                Code = 1006
	LexBadRawString             Code = 1007

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectSemicolon    Code = 2005
	SynExpectColon        Code = 2006
	SynExpectLiteral      Code = 2007
	SynBadAttribute       Code = 2008
	SynBadGenerics        Code = 2009
	SynUnexpectedTopLevel Code = 2010
	SynUnbalancedClose    Code = 2011

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Derive: форма и аннотации
	DeriveShapeNotNamedStruct Code = 4101
	DeriveAttrUnknownKey      Code = 4102
	DeriveAttrBadLiteral      Code = 4103
	DeriveEachNotCollection   Code = 4104
	DeriveBoundParse          Code = 4105

	// seq!
	SeqExpectIdent   Code = 4201
	SeqExpectIn      Code = 4202
	SeqExpectInt     Code = 4203
	SeqExpectRange   Code = 4204
	SeqExpectBody    Code = 4205
	SeqEmptyRange    Code = 4206
	SeqTrailingInput Code = 4207
	SeqRangeTooLarge Code = 4208

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexUnterminatedChar:         "Unterminated character literal",
		LexBadEscape:                "Unknown escape sequence",
		LexBadRawString:             "Malformed raw string literal",

		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynUnclosedDelimiter:  "Unclosed delimiter",
		SynExpectIdentifier:   "Expected identifier",
		SynExpectType:         "Expected type",
		SynExpectSemicolon:    "Expected semicolon",
		SynExpectColon:        "Expected colon",
		SynExpectLiteral:      "Expected literal",
		SynBadAttribute:       "Malformed attribute",
		SynBadGenerics:        "Malformed generic parameter list",
		SynUnexpectedTopLevel: "Unexpected token at top level",
		SynUnbalancedClose:    "Unbalanced closing delimiter",

		IOLoadFileError:  "I/O load file error",
		IOWriteFileError: "I/O write file error",

		DeriveShapeNotNamedStruct: "derive target must be a struct with named fields",
		DeriveAttrUnknownKey:      "unknown key in derive attribute",
		DeriveAttrBadLiteral:      "derive attribute expects a string literal",
		DeriveEachNotCollection:   "`each` requires a collection field",
		DeriveBoundParse:          "cannot parse bound override",

		SeqExpectIdent:   "seq!: expected identifier",
		SeqExpectIn:      "seq!: expected `in`",
		SeqExpectInt:     "seq!: expected integer literal",
		SeqExpectRange:   "seq!: expected `..` or `..=`",
		SeqExpectBody:    "seq!: expected braced body",
		SeqEmptyRange:    "seq!: range start exceeds end",
		SeqTrailingInput: "seq!: unexpected tokens after body",
		SeqRangeTooLarge: "seq!: range too large",

		ObsInfo:    "Observability information",
		ObsTimings: "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 4100:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 4100 && ic < 5000:
		return fmt.Sprintf("DRV%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
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

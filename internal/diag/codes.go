package diag

import (
	"fmt"
)

// Code identifies a diagnostic class. Ranges:
// 1xxx lexical, 2xxx syntactic, 3xxx semantic, 9xxx driver.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexBadNumber                Code = 1005
	LexBadEscape                Code = 1006

	// Syntactic.
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectSemicolon   Code = 2003
	SynUnclosedDelimiter Code = 2004
	SynBadType           Code = 2005
	SynBadDirective      Code = 2006
	SynBadForHeader      Code = 2007
	SynBadMacroParams    Code = 2008

	// Semantic, one code per analyzer error kind.
	SemDuplicateDefinition Code = 3001
	SemTypeMismatch        Code = 3002
	SemUndefinedVariable   Code = 3003
	SemInvalidOperation    Code = 3004
	SemUnsupportedFeature  Code = 3005

	// Driver.
	DrvFileError Code = 9001
)

var codeNames = map[Code]string{
	UnknownCode: "FE0000",

	LexUnknownChar:              "FE1001",
	LexUnterminatedString:       "FE1002",
	LexUnterminatedChar:         "FE1003",
	LexUnterminatedBlockComment: "FE1004",
	LexBadNumber:                "FE1005",
	LexBadEscape:                "FE1006",

	SynUnexpectedToken:   "FE2001",
	SynExpectIdentifier:  "FE2002",
	SynExpectSemicolon:   "FE2003",
	SynUnclosedDelimiter: "FE2004",
	SynBadType:           "FE2005",
	SynBadDirective:      "FE2006",
	SynBadForHeader:      "FE2007",
	SynBadMacroParams:    "FE2008",

	SemDuplicateDefinition: "FE3001",
	SemTypeMismatch:        "FE3002",
	SemUndefinedVariable:   "FE3003",
	SemInvalidOperation:    "FE3004",
	SemUnsupportedFeature:  "FE3005",

	DrvFileError: "FE9001",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("FE%04d", uint16(c))
}

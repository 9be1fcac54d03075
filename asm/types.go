package main

import (
	"strconv"

	"github.com/gmofishsauce/rv32x/isa"
)

/* Position identifies where a token, lexeme or line came from in the
   source text: a sequence index plus row/column for diagnostics. */
type Position struct {
	Seq int
	Row int
	Col int
}

func (p Position) String() string {
	return strconv.Itoa(p.Row) + ":" + strconv.Itoa(p.Col)
}

/* Token types */
const (
	TokEOF = iota
	TokIdent
	TokLabel
	TokSection
	TokNumber
	TokString
	TokComma
	TokLParen
	TokRParen
)

/* Token is a positioned lexical atom. */
type Token struct {
	Typ  int
	Text string /* raw text, including leading '.' for section/directive idents */
	Num  int32  /* parsed value for TokNumber */
	Pos  Position
}

/* Lexeme kinds the lexer classifies tokens into. */
const (
	LexOpcode = iota
	LexPseudo
	LexRegister
	LexDirective
	LexLinkerDirective
	LexSection
	LexLabel
	LexNumber
	LexString
	LexSymbolRef
	LexComma
	LexLParen
	LexRParen
	LexHi
	LexLo
)

/* Lexeme is a classified token. */
type Lexeme struct {
	Kind     int
	Text     string
	Ext      isa.Extension /* set when Kind == LexOpcode */
	Register uint8         /* set when Kind == LexRegister */
	Number   int32         /* set when Kind == LexNumber */
	Pos      Position
}

/* Argument kinds a GenericLine's Args carry. */
const (
	ArgNone = iota
	ArgRegister
	ArgNumber
	ArgString
	ArgSymbolFull
	ArgSymbolHi
	ArgSymbolLo
)

/* Arg is one operand of a GenericLine. Exactly one of the value fields is
   meaningful, selected by Kind. After symbol resolution (pass F), Kind
   ArgSymbolFull/Hi/Lo arguments are rewritten in place into ArgNumber
   (resolved within this object) while leaving a parallel Reloc entry when
   the symbol could not be resolved locally. */
type Arg struct {
	Kind   int
	Reg    uint8
	Num    int32
	Str    string
	Symbol string
}

/* line keywords */
const (
	KwOpcode = iota
	KwPseudo
	KwDirective
	KwLabel
)

/* GenericLine is a keyword plus its argument list, carrying source
   position through every assembler pass until emit encodes it. */
type GenericLine struct {
	Kw       int
	Mnemonic string        /* opcode or pseudo name */
	Ext      isa.Extension /* resolved opcode extension, if Kw == KwOpcode */
	Directive string       /* directive name, if Kw == KwDirective */
	Label    string        /* label name, if Kw == KwLabel */
	Args     []Arg
	Pos      Position

	/* stamped by pass D */
	RelAddr uint32
	Size    uint32 /* byte length this line contributes to its block */
}

/* GenericBlock is a section name and its ordered lines. */
type GenericBlock struct {
	Section string
	Lines   []GenericLine
	Base    uint32
}

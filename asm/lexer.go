package main

import (
	"strings"

	"github.com/gmofishsauce/rv32x/isa"
)

/* directiveNames and pseudoNames are the fixed keyword tables the lexer
   consults alongside isa.RegisterNames and the extension table to classify
   an identifier (spec.md §4.2). */
var directiveNames = map[string]bool{
	"word": true, "half": true, "byte": true, "skip": true, "ascii": true,
	"set": true,
}

var linkerDirectiveNames = map[string]bool{
	"globl": true,
}

var pseudoNames = map[string]bool{
	"li": true, "mv": true, "ret": true, "la": true,
}

/* Lexer maps each Tokenizer token to a typed Lexeme. */
type Lexer struct {
	tok *Tokenizer
	ext isa.Table
}

func newLexer(src string) *Lexer {
	return &Lexer{tok: newTokenizer(src), ext: isa.AllExtensions()}
}

/* Next returns the next lexeme, or ok=false at end of input. Errors
   (invalid characters, etc.) are reported via the diags slice passed by
   the caller rather than aborting — per spec.md §4.1's recovery policy. */
func (l *Lexer) Next(diags *[]error) (Lexeme, bool) {
	for {
		t, ok := l.tok.Next()
		if !ok {
			*diags = append(*diags, &AssemblerError{Kind: "InvalidCharacter", Pos: t.Pos})
			continue
		}
		switch t.Typ {
		case TokEOF:
			return Lexeme{}, false

		case TokLabel:
			return Lexeme{Kind: LexLabel, Text: t.Text, Pos: t.Pos}, true

		case TokSection:
			name := strings.TrimPrefix(t.Text, ".")
			switch {
			case directiveNames[name]:
				return Lexeme{Kind: LexDirective, Text: name, Pos: t.Pos}, true
			case linkerDirectiveNames[name]:
				return Lexeme{Kind: LexLinkerDirective, Text: name, Pos: t.Pos}, true
			default:
				return Lexeme{Kind: LexSection, Text: sectionCanonical(name), Pos: t.Pos}, true
			}

		case TokNumber:
			return Lexeme{Kind: LexNumber, Number: t.Num, Pos: t.Pos}, true

		case TokString:
			return Lexeme{Kind: LexString, Text: t.Text, Pos: t.Pos}, true

		case TokComma:
			return Lexeme{Kind: LexComma, Pos: t.Pos}, true
		case TokLParen:
			return Lexeme{Kind: LexLParen, Pos: t.Pos}, true
		case TokRParen:
			return Lexeme{Kind: LexRParen, Pos: t.Pos}, true

		case TokIdent:
			if t.Text == "%hi" {
				return Lexeme{Kind: LexHi, Pos: t.Pos}, true
			}
			if t.Text == "%lo" {
				return Lexeme{Kind: LexLo, Pos: t.Pos}, true
			}
			lower := strings.ToLower(t.Text)
			if id, ok := isa.RegisterID(lower); ok {
				return Lexeme{Kind: LexRegister, Text: t.Text, Register: id, Pos: t.Pos}, true
			}
			if ext, ok := l.ext.Lookup(lower); ok {
				return Lexeme{Kind: LexOpcode, Text: lower, Ext: ext, Pos: t.Pos}, true
			}
			if pseudoNames[lower] {
				return Lexeme{Kind: LexPseudo, Text: lower, Pos: t.Pos}, true
			}
			return Lexeme{Kind: LexSymbolRef, Text: t.Text, Pos: t.Pos}, true

		default:
			return Lexeme{Kind: LexSymbolRef, Text: t.Text, Pos: t.Pos}, true
		}
	}
}

/* sectionCanonical maps the three built-in shorthand section markers to
   their canonical names; any other name passes through unchanged as a
   custom section. */
func sectionCanonical(name string) string {
	switch name {
	case "text":
		return "text"
	case "data":
		return "data"
	case "bss":
		return "bss"
	case "section":
		return "" /* ".section <name>" form: caller reads the next token as the name */
	default:
		return name
	}
}

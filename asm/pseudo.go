package main

import "github.com/gmofishsauce/rv32x/isa"

/* expandPseudo implements Pass A's fixed per-mnemonic expansion table
   (spec.md §4.4 Pass A). It replaces one pseudo GenericLine with one or two
   real opcode GenericLines, all stamped with the pseudo's original
   position so diagnostics from later passes still point at the source
   line the user wrote. */
func expandPseudo(line GenericLine, tbl isa.Table) ([]GenericLine, error) {
	opcode := func(mnemonic string, args ...Arg) (GenericLine, error) {
		ext, ok := tbl.Lookup(mnemonic)
		if !ok {
			return GenericLine{}, errAt("UnsupportedMnemonic", line.Pos, "pseudo expansion needs %q", mnemonic)
		}
		return GenericLine{Kw: KwOpcode, Mnemonic: mnemonic, Ext: ext, Args: args, Pos: line.Pos}, nil
	}

	switch line.Mnemonic {
	case "mv":
		if len(line.Args) != 2 {
			return nil, errAt("BadArgumentShape", line.Pos, "mv rd, rs")
		}
		rd, rs := line.Args[0], line.Args[1]
		addi, err := opcode("addi", rd, rs, Arg{Kind: ArgNumber, Num: 0})
		return []GenericLine{addi}, err

	case "ret":
		zero := Arg{Kind: ArgRegister, Reg: 0}
		ra := Arg{Kind: ArgRegister, Reg: 1}
		jalr, err := opcode("jalr", zero, ra, Arg{Kind: ArgNumber, Num: 0})
		return []GenericLine{jalr}, err

	case "li":
		if len(line.Args) != 2 {
			return nil, errAt("BadArgumentShape", line.Pos, "li rd, imm")
		}
		rd, imm := line.Args[0], line.Args[1]
		if imm.Kind != ArgNumber {
			return nil, errAt("BadArgumentShape", line.Pos, "li requires a literal immediate")
		}
		return expandMaterialize(rd, imm.Num, opcode)

	case "la":
		if len(line.Args) != 2 {
			return nil, errAt("BadArgumentShape", line.Pos, "la rd, sym|imm")
		}
		rd, target := line.Args[0], line.Args[1]
		if target.Kind == ArgNumber {
			return expandMaterialize(rd, target.Num, opcode)
		}
		if target.Kind != ArgSymbolFull {
			return nil, errAt("BadArgumentShape", line.Pos, "la requires a symbol or literal")
		}
		auipc, err := opcode("auipc", rd, Arg{Kind: ArgSymbolHi, Symbol: target.Symbol})
		if err != nil {
			return nil, err
		}
		addi, err := opcode("addi", rd, rd, Arg{Kind: ArgSymbolLo, Symbol: target.Symbol})
		if err != nil {
			return nil, err
		}
		return []GenericLine{auipc, addi}, nil

	default:
		return nil, errAt("UnknownMnemonic", line.Pos, "unknown pseudo %q", line.Mnemonic)
	}
}

/* expandMaterialize is the shared li/la(literal) split rule: a 12-bit
   signed literal fits in a single addi; anything wider needs lui+addi with
   the upper 20 bits and the low 12-bit signed adjustment. */
func expandMaterialize(rd Arg, n int32, opcode func(string, ...Arg) (GenericLine, error)) ([]GenericLine, error) {
	if n >= -2048 && n <= 2047 {
		zero := Arg{Kind: ArgRegister, Reg: 0}
		addi, err := opcode("addi", rd, zero, Arg{Kind: ArgNumber, Num: n})
		return []GenericLine{addi}, err
	}
	upper := (n >> 12) & 0xFFFFF
	lower := n & 0xFFF
	lui, err := opcode("lui", rd, Arg{Kind: ArgNumber, Num: upper})
	if err != nil {
		return nil, err
	}
	addi, err := opcode("addi", rd, rd, Arg{Kind: ArgNumber, Num: lower})
	if err != nil {
		return nil, err
	}
	return []GenericLine{lui, addi}, nil
}

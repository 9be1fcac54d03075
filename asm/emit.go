package main

import (
	"github.com/gmofishsauce/rv32x/isa"
	"github.com/gmofishsauce/rv32x/object"
)

/* emit runs Pass G (argument reduction) together with the Codec and
   Emitter stages of the pipeline: every opcode line's Args are by now
   plain registers/numbers (resolveSymbols already rewrote any symbol
   reference), so reduction is just reading the already-reduced values in
   positional order and handing them to isa.Encode; directive lines go
   through directiveBytes. The result is the object.Object bundle spec.md
   §6 describes as the object emission contract. */
func (a *Assembler) emit(blocks []GenericBlock) (*object.Object, error) {
	obj := &object.Object{Relocations: a.relocs}

	for _, b := range blocks {
		var bytes []byte
		for _, line := range b.Lines {
			switch line.Kw {
			case KwOpcode:
				args, err := reduceArgs(line)
				if err != nil {
					return nil, err
				}
				word, err := isa.Encode(line.Ext, args)
				if err != nil {
					return nil, errAt("UnsupportedMnemonic", line.Pos, "%v", err)
				}
				bytes = appendWordLE(bytes, word)
			case KwDirective:
				raw, _, err := directiveBytes(line)
				if err != nil {
					return nil, err
				}
				bytes = append(bytes, raw...)
				for len(bytes)%4 != 0 {
					bytes = append(bytes, 0)
				}
			}
		}
		alignment := uint32(4)
		obj.Sections = append(obj.Sections, object.Section{
			Name:      b.Section,
			Base:      b.Base,
			Bytes:     bytes,
			Alignment: alignment,
		})
	}

	for name, sym := range a.symbols {
		kind := object.SymData
		if sym.Section == "text" {
			kind = object.SymText
		}
		scope := object.ScopeLocal
		if a.globals[name] {
			scope = object.ScopeGlobal
		}
		if name == "_start" {
			kind = object.SymEntry
			scope = object.ScopeGlobal
		}
		obj.Symbols = append(obj.Symbols, object.Symbol{
			Name:    name,
			Section: sym.Section,
			Offset:  sym.Offset,
			Kind:    kind,
			Scope:   scope,
		})
	}

	if _, ok := a.symbols["_start"]; ok {
		obj.Entry = "_start"
	}

	return obj, nil
}

func reduceArgs(line GenericLine) ([]int32, error) {
	out := make([]int32, len(line.Args))
	for i, arg := range line.Args {
		switch arg.Kind {
		case ArgRegister:
			out[i] = int32(arg.Reg)
		case ArgNumber:
			out[i] = arg.Num
		default:
			return nil, errAt("BadArgumentShape", line.Pos, "argument %d did not reduce to an integer", i)
		}
	}
	return out, nil
}

func appendWordLE(b []byte, w uint32) []byte {
	return append(b, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
}

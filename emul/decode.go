// Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.

package main

import (
	"fmt"

	"github.com/gmofishsauce/rv32x/isa"
)

// UnknownInstruction reports a fetched word whose primary opcode field
// doesn't match any of the six recognized layouts.
type UnknownInstruction struct {
	Word uint32
	PC   uint32
}

func (e *UnknownInstruction) Error() string {
	return fmt.Sprintf("unknown instruction word 0x%08X", e.Word)
}

// UnhandledInstruction reports a word that decoded to a recognized layout
// but whose (opcode, funct3, funct7) triple doesn't match any mnemonic
// this build implements execution semantics for.
type UnhandledInstruction struct {
	In isa.Instruction
}

func (e *UnhandledInstruction) Error() string {
	return fmt.Sprintf("unhandled instruction: opcode=0x%02X funct3=0x%X funct7=0x%02X",
		e.In.Opcode, e.In.Funct3, e.In.Funct7)
}

// decode is a thin wrapper over isa.Decode kept as its own file to mirror
// the teacher's convention of a dedicated decode.go alongside execute.go.
func decode(word uint32) (isa.Instruction, bool) {
	return isa.Decode(word)
}

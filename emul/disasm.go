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
	"os"

	"github.com/gmofishsauce/rv32x/isa"
	"github.com/gmofishsauce/rv32x/object"
)

// disassembleFile prints a listing of every section in an RVO container,
// mirroring asm -d's output so a loaded binary and its disassembly can be
// compared side by side.
func disassembleFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	obj, err := object.Read(data)
	if err != nil {
		return fmt.Errorf("invalid container: %w", err)
	}

	for _, s := range obj.Sections {
		fmt.Printf(".section %s  // base 0x%08X, %d bytes\n", s.Name, s.Base, len(s.Bytes))
		for off := 0; off+4 <= len(s.Bytes); off += 4 {
			word := uint32(s.Bytes[off]) | uint32(s.Bytes[off+1])<<8 |
				uint32(s.Bytes[off+2])<<16 | uint32(s.Bytes[off+3])<<24
			fmt.Printf("  %08X: %08X  %s\n", s.Base+uint32(off), word, isa.Disassemble(word))
		}
	}
	return nil
}

package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/gmofishsauce/rv32x/isa"
	"github.com/gmofishsauce/rv32x/object"
)

/* disassemble reads an RVO object file and prints a listing: one line per
   section, one mnemonic line per 4-byte instruction word in a text-like
   section, and a raw byte/word dump for everything else. */
func disassemble(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	obj, err := object.Read(data)
	if err != nil {
		return fmt.Errorf("invalid container: %w", err)
	}

	fmt.Printf("; rv32x disassembly of %s\n", filename)
	fmt.Printf("; entry: %s\n\n", obj.Entry)

	for _, s := range obj.Sections {
		fmt.Printf(".section %s  // base 0x%08X, %d bytes\n", s.Name, s.Base, len(s.Bytes))
		if s.Name == "text" {
			for off := 0; off+4 <= len(s.Bytes); off += 4 {
				word := binary.LittleEndian.Uint32(s.Bytes[off : off+4])
				fmt.Printf("  %08X: %08X  %s\n", s.Base+uint32(off), word, isa.Disassemble(word))
			}
		} else {
			for off := 0; off+4 <= len(s.Bytes); off += 4 {
				word := binary.LittleEndian.Uint32(s.Bytes[off : off+4])
				fmt.Printf("  %08X: .word 0x%08X\n", s.Base+uint32(off), word)
			}
		}
		fmt.Println()
	}

	return nil
}

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

import "testing"

func TestMemoryWordRoundTrip(t *testing.T) {
	m := NewMemory(64)
	if !m.WriteWord(4, 0xDEADBEEF) {
		t.Fatal("write failed unexpectedly")
	}
	got, ok := m.ReadWord(4)
	if !ok || got != 0xDEADBEEF {
		t.Errorf("got (0x%08X, %v), want (0xDEADBEEF, true)", got, ok)
	}
}

func TestMemoryLittleEndianByteOrder(t *testing.T) {
	m := NewMemory(64)
	m.WriteWord(0, 0x01020304)
	b0, _ := m.ReadByte(0)
	b3, _ := m.ReadByte(3)
	if b0 != 0x04 || b3 != 0x01 {
		t.Errorf("byte 0 = 0x%02X, byte 3 = 0x%02X, want 0x04/0x01 (little-endian)", b0, b3)
	}
}

func TestMemoryOutOfBoundsIsNonFatal(t *testing.T) {
	m := NewMemory(4)
	if _, ok := m.ReadWord(100); ok {
		t.Error("expected out-of-bounds read to report ok=false")
	}
	if ok := m.WriteWord(100, 1); ok {
		t.Error("expected out-of-bounds write to report ok=false")
	}
}

func TestLoadSectionGrowsMemory(t *testing.T) {
	m := NewMemory(4)
	m.LoadSection(100, []byte{1, 2, 3, 4})
	got, ok := m.ReadWord(100)
	if !ok || got != 0x04030201 {
		t.Errorf("got (0x%08X, %v)", got, ok)
	}
}

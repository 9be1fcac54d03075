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
	"encoding/binary"
	"fmt"
)

// MemoryOutOfBounds reports an access past the end of physical memory. It
// is non-fatal: the caller logs a warning and treats the access as a
// no-op/zero read, matching how the teacher's MMU page faults stayed
// recoverable rather than panicking the process.
type MemoryOutOfBounds struct {
	Addr uint32
	Size int
}

func (e *MemoryOutOfBounds) Error() string {
	return fmt.Sprintf("memory access out of bounds: addr=0x%08X size=%d", e.Addr, e.Size)
}

// Memory is flat, byte-addressable little-endian physical memory. There is
// no MMU, no page permissions, and no exception vectoring: spec.md's
// emulator scope is a single flat address space.
type Memory struct {
	bytes []byte
}

// NewMemory allocates size bytes of zeroed memory.
func NewMemory(size uint32) *Memory {
	return &Memory{bytes: make([]byte, size)}
}

// LoadSection copies data into memory starting at base, growing the
// backing array if the object's highest address exceeds the current size.
func (m *Memory) LoadSection(base uint32, data []byte) {
	end := base + uint32(len(data))
	if end > uint32(len(m.bytes)) {
		grown := make([]byte, end)
		copy(grown, m.bytes)
		m.bytes = grown
	}
	copy(m.bytes[base:end], data)
}

func (m *Memory) bounds(addr uint32, size int) bool {
	return uint64(addr)+uint64(size) <= uint64(len(m.bytes))
}

// ReadByte, ReadHalf, and ReadWord perform little-endian loads of the
// named width. ok is false when the access falls outside memory.
func (m *Memory) ReadByte(addr uint32) (byte, bool) {
	if !m.bounds(addr, 1) {
		return 0, false
	}
	return m.bytes[addr], true
}

func (m *Memory) ReadHalf(addr uint32) (uint16, bool) {
	if !m.bounds(addr, 2) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(m.bytes[addr : addr+2]), true
}

func (m *Memory) ReadWord(addr uint32) (uint32, bool) {
	if !m.bounds(addr, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.bytes[addr : addr+4]), true
}

func (m *Memory) WriteByte(addr uint32, v byte) bool {
	if !m.bounds(addr, 1) {
		return false
	}
	m.bytes[addr] = v
	return true
}

func (m *Memory) WriteHalf(addr uint32, v uint16) bool {
	if !m.bounds(addr, 2) {
		return false
	}
	binary.LittleEndian.PutUint16(m.bytes[addr:addr+2], v)
	return true
}

func (m *Memory) WriteWord(addr uint32, v uint32) bool {
	if !m.bounds(addr, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(m.bytes[addr:addr+4], v)
	return true
}

// ReadBytes and WriteBytes support the debug stub's block memory access.
func (m *Memory) ReadBytes(addr uint32, buf []byte) int {
	if !m.bounds(addr, len(buf)) {
		return 0
	}
	return copy(buf, m.bytes[addr:addr+uint32(len(buf))])
}

func (m *Memory) WriteBytes(addr uint32, data []byte) bool {
	if !m.bounds(addr, len(data)) {
		return false
	}
	copy(m.bytes[addr:addr+uint32(len(data))], data)
	return true
}

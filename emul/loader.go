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

	"github.com/gmofishsauce/rv32x/object"
)

// loadObject parses an RVO container and copies its sections into a fresh
// CPU's memory at their recorded base addresses, setting PC to the
// resolved entry address.
func loadObject(data []byte) (*CPU, error) {
	img, err := object.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading object: %w", err)
	}

	cpu := NewCPU()
	for name, bytes := range img.Sections {
		cpu.mem.LoadSection(img.SectionBases[name], bytes)
	}
	cpu.pc = img.Entry
	return cpu, nil
}

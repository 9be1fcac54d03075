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
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/gmofishsauce/rv32x/debugstub"
)

var (
	disasm      = flag.Bool("d", false, "disassemble the binary instead of running it")
	traceFile   = flag.String("trace", "", "write an execution trace to file")
	maxCycles   = flag.Uint64("max-cycles", 0, "stop after N cycles (0 = unlimited)")
	debugPort   = flag.String("debug", "", "wait for a debug-stub connection on this port (e.g. 2345) before running")
	showVersion = flag.Bool("version", false, "show version and exit")
)

const version = "1.0.0"

var savedTermState *term.State

// setupTerminal puts stdin in raw mode, used only while a debug-stub
// session is attached so keystrokes reach the stub byte-by-byte instead of
// being line-buffered by the local terminal driver.
func setupTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	state, err := term.GetState(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to get terminal state: %v", err)
	}
	savedTermState = state
	if _, err := term.MakeRaw(int(os.Stdin.Fd())); err != nil {
		return fmt.Errorf("failed to set raw mode: %v", err)
	}
	return nil
}

func restoreTerminal() {
	if savedTermState != nil && term.IsTerminal(int(os.Stdin.Fd())) {
		term.Restore(int(os.Stdin.Fd()), savedTermState)
	}
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("rv32x emulator v%s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}
	binaryFile := args[0]

	if *disasm {
		if err := disassembleFile(binaryFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	data, err := os.ReadFile(binaryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading binary file: %v\n", err)
		os.Exit(1)
	}

	cpu, err := loadObject(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading binary: %v\n", err)
		os.Exit(1)
	}

	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating trace file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		cpu.tracer = NewTracer(f)
		fmt.Fprintf(f, "rv32x emulator trace\nBinary: %s\nSize: %d bytes\n========================================\n\n",
			binaryFile, len(data))
	}

	if *debugPort != "" {
		runWithDebugStub(cpu, *debugPort)
		return
	}

	runFreeRunning(cpu, *maxCycles)
}

// runFreeRunning executes cpu.Run (or the max-cycles-bounded variant) with
// no debug stub attached, printing the same execution statistics the
// teacher's emulator reports.
func runFreeRunning(cpu *CPU, maxCycles uint64) {
	startTime := time.Now()
	var err error
	if maxCycles > 0 {
		for cpu.running && cpu.cycles < maxCycles {
			if err = cpu.Step(); err != nil {
				break
			}
		}
		if cpu.running && cpu.cycles >= maxCycles {
			fmt.Fprintf(os.Stderr, "\nMax cycles reached (%d)\n", maxCycles)
		}
	} else {
		err = cpu.Run()
	}
	elapsed := time.Since(startTime)

	fmt.Fprintf(os.Stderr, "\n========================================\n")
	fmt.Fprintf(os.Stderr, "Execution completed\n")
	fmt.Fprintf(os.Stderr, "Cycles: %d\n", cpu.cycles)
	fmt.Fprintf(os.Stderr, "Time: %v\n", elapsed.Round(time.Millisecond))
	if elapsed.Seconds() > 0 {
		mhz := (float64(cpu.cycles) / 1_000_000.0) / elapsed.Seconds()
		fmt.Fprintf(os.Stderr, "Speed: %.3f MHz\n", mhz)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cpu.exited {
		fmt.Fprintf(os.Stderr, "Exit: %d\n", cpu.exitCode)
		os.Exit(int(cpu.exitCode))
	}
	fmt.Fprintf(os.Stderr, "Exit: normal\n")
}

// runWithDebugStub waits for a debugger to connect on debugPort, puts the
// local terminal in raw mode for the duration, and drives the emulator
// through debugstub.Session instead of a free-running loop.
func runWithDebugStub(cpu *CPU, debugPort string) {
	fmt.Fprintf(os.Stderr, "Waiting for debugger connection on %s...\n", debugPort)
	conn, err := debugstub.WaitForDebuggerConnection(debugPort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := setupTerminal(); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up terminal: %v\n", err)
		os.Exit(1)
	}
	defer restoreTerminal()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		restoreTerminal()
		os.Exit(130)
	}()

	session := debugstub.NewSession(&debugTarget{cpu: cpu}, debugstub.NewBreakpoints())
	src := &debugstub.TCPByteSource{Conn: conn}

	// No wire protocol exists to decode commands (spec.md's debug stub is a
	// semantic layer only), so this driver loop treats each incoming byte
	// as a pause/resume toggle: the first byte pauses a running target, the
	// next resumes it. Breakpoint and step-complete stops behave the same
	// way, leaving the session Idle until the next byte arrives.
	paused := false
	session.Resume()
	for {
		reason, err := session.RunUntilStop(src, 2*time.Millisecond)
		if err != nil {
			restoreTerminal()
			fmt.Fprintf(os.Stderr, "\nDebug session ended: %v\n", err)
			return
		}
		switch reason.Kind {
		case debugstub.StopExited:
			restoreTerminal()
			fmt.Fprintf(os.Stderr, "\nProgram exited: code=%d\n", reason.ExitCode)
			return
		case debugstub.StopSIGINT:
			paused = !paused
			if paused {
				fmt.Fprintf(os.Stderr, "\n*** paused\n")
			} else {
				fmt.Fprintf(os.Stderr, "\n*** resumed\n")
				session.Resume()
			}
		case debugstub.StopSwBreak:
			paused = true
			fmt.Fprintf(os.Stderr, "\n*** breakpoint hit\n")
		case debugstub.StopDoneStep:
			paused = true
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <binary-file>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "rv32x emulator - execute or disassemble rv32x object files\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nArguments:\n")
	fmt.Fprintf(os.Stderr, "  <binary-file>    RVO object file to execute or disassemble\n")
}

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	disasm := flag.Bool("d", false, "disassemble mode")
	output := flag.String("o", "a.rvo", "output file")
	listing := flag.Bool("listing", false, "print a disassembly listing of the assembled object before exiting")
	flag.Parse()

	if *disasm {
		if flag.NArg() < 1 {
			fmt.Fprintf(os.Stderr, "Error: disassemble mode requires input file\n")
			os.Exit(1)
		}
		if err := disassemble(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: assemble mode requires input file\n")
		os.Exit(1)
	}
	inputFile := flag.Arg(0)
	if err := assemble(inputFile, *output, *listing); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

/* assemble reads inputFile, runs it through the full pipeline, and writes
   the resulting RVO container to outputFile. Parse/semantic diagnostics
   are printed to stderr but do not themselves abort translation (per
   spec.md §7's accumulate-and-continue policy): the object is still
   written when one was produced. Any reported diagnostic, like an
   encoding error, still turns into a non-zero exit. */
func assemble(inputFile, outputFile string, listing bool) error {
	src, err := os.ReadFile(inputFile)
	if err != nil {
		return err
	}

	obj, diags := Assemble(string(src))
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inputFile, d)
	}
	if obj == nil {
		return fmt.Errorf("assembly of %s failed", inputFile)
	}

	if err := writeOutput(obj, outputFile); err != nil {
		return err
	}

	if listing {
		if err := disassemble(outputFile); err != nil {
			return err
		}
	}

	if len(diags) > 0 {
		return fmt.Errorf("%d diagnostic(s) reported", len(diags))
	}
	return nil
}

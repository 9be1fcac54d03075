package main

import (
	"os"

	"github.com/gmofishsauce/rv32x/object"
)

/* writeOutput serializes obj via the RVO container writer and writes it
   to filename. */
func writeOutput(obj *object.Object, filename string) error {
	data, err := object.Write(obj)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

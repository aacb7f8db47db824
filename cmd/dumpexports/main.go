package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	peparser "github.com/saferwall/pe"
)

func main() {
	file := flag.String("file", "", "path to a PE file on disk")
	module := flag.String("module", "", "name of a module loaded in this process (windows only)")
	flag.Parse()

	switch {
	case *file != "":
		if err := dumpFile(*file); err != nil {
			log.Fatal(err)
		}
	case *module != "":
		if err := dumpLoaded(*module); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// dumpFile maps the file read-only and parses the export directory from the
// mapped bytes, the same borrowed-memory model the runtime resolver uses
// against a loaded image.
func dumpFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return err
	}
	defer m.Unmap()

	img, err := peparser.NewBytes(m, &peparser.Options{})
	if err != nil {
		return err
	}
	defer img.Close()

	if err := img.Parse(); err != nil {
		return err
	}

	funcs := img.Export.Functions
	fmt.Printf("%s: %d exported functions\n", path, len(funcs))
	for _, fn := range funcs {
		if fn.Forwarder != "" {
			// the runtime resolver refuses these
			fmt.Printf("%5d  %-40s -> %s (forwarded)\n", fn.Ordinal, fn.Name, fn.Forwarder)
			continue
		}
		fmt.Printf("%5d  %-40s 0x%08x\n", fn.Ordinal, fn.Name, fn.FunctionRVA)
	}
	return nil
}

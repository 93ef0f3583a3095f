package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/verdict-go/verdict/drift"
	"github.com/verdict-go/verdict/shape"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	case "update":
		updateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "verdict CLI\n\nUsage:\n  verdict check  -dir baselines/ -id schema-id -shape current.json\n  verdict update -dir baselines/ -id schema-id -shape current.json\n\nNotes:\n  - check exits non-zero on any unreviewed structural change.\n  - update records the current shape as the reviewed baseline.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	dir, id, file := commonFlags(fs)
	_ = fs.Parse(args)
	if *dir == "" || *id == "" || *file == "" {
		fs.Usage()
		os.Exit(2)
	}
	current := readShape(*file)
	store := drift.NewStore(*dir)
	changes, err := store.Check(*id, current)
	if err != nil {
		if errors.Is(err, drift.ErrNoBaseline) {
			fatalf("no baseline for %q; review the shape and run `verdict update`", *id)
		}
		fatalf("check: %v", err)
	}
	if len(changes) == 0 {
		fmt.Printf("%s: no drift\n", *id)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %d unreviewed change(s):\n", *id, len(changes))
	for _, c := range changes {
		fmt.Fprintf(os.Stderr, "  %s\n", c)
	}
	os.Exit(1)
}

func updateCmd(args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	dir, id, file := commonFlags(fs)
	_ = fs.Parse(args)
	if *dir == "" || *id == "" || *file == "" {
		fs.Usage()
		os.Exit(2)
	}
	current := readShape(*file)
	store := drift.NewStore(*dir)
	if err := store.Save(*id, current); err != nil {
		fatalf("update: %v", err)
	}
	fmt.Printf("%s: baseline written to %s\n", *id, store.Path(*id))
}

func commonFlags(fs *flag.FlagSet) (dir, id, file *string) {
	dir = fs.String("dir", "", "baseline directory")
	id = fs.String("id", "", "schema identifier")
	file = fs.String("shape", "", "current shape file (canonical JSON)")
	return
}

func readShape(file string) *shape.Shape {
	data, err := os.ReadFile(file)
	if err != nil {
		fatalf("reading shape: %v", err)
	}
	sh, err := shape.Decode(data)
	if err != nil {
		fatalf("decoding shape: %v", err)
	}
	return sh
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// Package main provides a command-line utility to inspect and compare
// audio fingerprints in their textual representation. It's a thin
// wrapper over the fprint package's parse and scalar-match operators,
// useful for debugging a fingerprint pulled from the index or the
// source table directly.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/soundidx/gistfp/fprint"
)

func main() {
	cmd := flag.String("cmd", "show", "one of: show, cmp")
	flag.Parse()

	args := flag.Args()
	switch *cmd {
	case "show":
		runShow(args)
	case "cmp":
		runCmp(args)
	default:
		fmt.Printf("Usage: fprintctl -cmd=show <file> | -cmd=cmp <fileA> <fileB>\n")
		flag.PrintDefaults()
	}
}

func runShow(args []string) {
	if len(args) < 1 {
		log.Fatalf("show requires a file argument")
	}
	fp := readFingerprint(args[0])
	fmt.Printf("songlen=%d bit_rate=%d num_errors=%d cprint_len=%d\n",
		fp.Songlen, fp.BitRate, fp.NumErrors, len(fp.Cprint))
}

func runCmp(args []string) {
	if len(args) < 2 {
		log.Fatalf("cmp requires two file arguments")
	}
	a := readFingerprint(args[0])
	b := readFingerprint(args[1])
	th := fprint.DefaultThresholds()
	val := fprint.Cmp(a, b)
	fmt.Printf("match=%.4f eq=%v match_strategy=%v\n", val, fprint.Eq(a, b, th), fprint.Match(a, b, th))
}

func readFingerprint(path string) *fprint.Fingerprint {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open file: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close file: %v", err)
		}
	}()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	if !scanner.Scan() {
		log.Fatalf("empty fingerprint file: %s", path)
	}
	fp, err := fprint.ParseText(scanner.Text())
	if err != nil {
		log.Fatalf("failed to parse fingerprint: %v", err)
	}
	return fp
}

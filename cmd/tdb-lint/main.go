// Command tdb-lint is a pure syntax check over a file of statements, one
// per line, grounded on the teacher's cmd/tdb-validate (read a file,
// report "Invalid ..." or a success message, no execution against any
// engine). Blank lines and "//"-prefixed comments are skipped.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tdbql/tdbql/internal/parser"
)

func main() {
	args := os.Args
	if len(args) < 2 {
		fmt.Println("usage: tdb-lint <path>")
		os.Exit(1)
	}
	path := args[1]

	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if err := lintLine(line); err != nil {
			fmt.Printf("line %d: %s\n", lineNo, err)
			os.Exit(1)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("OK")
}

func lintLine(line string) error {
	p, err := parser.New(line)
	if err != nil {
		return err
	}
	_, err = p.ParseStatement()
	return err
}

// Command tdb is a flag-configured REPL that embeds the tdbql engine,
// grounded on the teacher's cmd/tdb main (flag.String/Bool for -db/-m,
// os/signal for a final flush on shutdown), reshaped around a single
// process-wide catalog.Engine instead of a TobsDB HTTP server.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tdbql/tdbql/internal/catalog"
	"github.com/tdbql/tdbql/internal/parser"
	"github.com/tdbql/tdbql/internal/persist"
	"github.com/tdbql/tdbql/pkg"
)

func main() {
	cwd, _ := os.Getwd()

	dbDir := flag.String("db", cwd+"/tdbdata", "catalog directory for dumps; empty implies in-memory only")
	inMem := flag.Bool("m", false, "force in-memory mode, never touching disk")
	flushMs := flag.Int("flush-ms", 5000, "background flush interval in milliseconds")
	debug := flag.Bool("debug", false, "enable debug-level logging")
	flag.Parse()

	if *debug {
		pkg.SetLogLevel(pkg.LogLevelDebug)
	} else {
		pkg.SetLogLevel(pkg.LogLevelErrOnly)
	}

	write := catalog.WriteSettings{
		Dir:           *dbDir,
		InMemory:      *inMem || *dbDir == "",
		FlushInterval: time.Duration(*flushMs) * time.Millisecond,
	}

	engine := catalog.NewEngine(write, persist.Flusher{})
	defer engine.Close()

	if !write.InMemory {
		tables, err := persist.RestoreAll(write.Dir)
		if err != nil {
			pkg.FatalLog("restoring catalog from", write.Dir, ";", err)
		}
		for name, t := range tables {
			engine.Install(name, t)
		}
		pkg.InfoLog("restored", len(tables), "table(s) from", write.Dir)
	}

	exit := make(chan os.Signal, 2)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go repl(engine, done)

	select {
	case <-exit:
		pkg.DebugLog("shutting down on signal")
	case <-done:
		pkg.DebugLog("shutting down on EOF")
	}
	if err := engine.Flush(persist.Flusher{}); err != nil {
		pkg.ErrorLog("final flush failed;", err)
	}
}

func repl(engine *catalog.Engine, done chan<- struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		runStatement(engine, line)
	}
	close(done)
}

func runStatement(engine *catalog.Engine, line string) {
	p, err := parser.New(line)
	if err != nil {
		pkg.WarnLog("lex error;", err)
		fmt.Println("error:", err)
		return
	}
	cmd, err := p.ParseStatement()
	if err != nil {
		pkg.WarnLog("parse error;", err)
		fmt.Println("error:", err)
		return
	}
	view, err := cmd.Execute(engine)
	if err != nil {
		pkg.WarnLog("execute error;", err)
		fmt.Println("error:", err)
		return
	}
	if view == nil {
		pkg.DebugLog("statement executed")
		fmt.Println("OK")
		return
	}
	if err := view.Print(os.Stdout); err != nil {
		pkg.ErrorLog("printing view;", err)
	}
}

// Command trac64 is a host around the trac64 interpreter core: it owns argv
// parsing, source assembly, and the ps primitive's write sink, none of
// which are part of the interpreter core itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/tracvm/trac64"
	"github.com/tracvm/trac64/internal/fileinput"
	"github.com/tracvm/trac64/internal/logio"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("trac64", flag.ContinueOnError)

	var (
		trace   bool
		dump    bool
		timeout time.Duration
		files   stringSlice
	)
	fs.BoolVar(&trace, "trace", false, "enable trace logging to stderr")
	fs.BoolVar(&dump, "dump", false, "print the form store after execution")
	fs.DurationVar(&timeout, "timeout", 0, "abort execution after this long")
	fs.Var(&files, "f", "program fragment to read instead of stdin (repeatable)")

	if err := fs.Parse(argv); err != nil {
		return 2
	}

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer log.Close()

	var in fileinput.Input
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			log.ErrorIf(err)
			return log.ExitCode()
		}
		defer f.Close()
		in.Queue = append(in.Queue, namedFile{f, name})
	}
	if len(files) == 0 {
		in.Queue = append(in.Queue, namedFile{os.Stdin, "<stdin>"})
	}

	source, err := in.ReadAll()
	if err != nil {
		log.ErrorIf(err)
		return log.ExitCode()
	}

	opts := []trac64.Option{trac64.WithOutput(os.Stdout)}
	if trace {
		opts = append(opts, trac64.WithLogf(log.Leveledf("TRACE")))
	}
	ip := trac64.New(opts...)
	defer ip.Close()

	done := make(chan string, 1)
	go func() { done <- ip.Execute(source) }()

	// Execute takes no context: it runs to completion once started.
	// -timeout only stops the host from waiting on it; the goroutine above
	// is abandoned, not cancelled.
	var out string
	if timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		select {
		case out = <-done:
		case <-ctx.Done():
			log.ErrorIf(ctx.Err())
			return log.ExitCode()
		}
	} else {
		out = <-done
	}

	writeResult(os.Stdout, out)

	if dump {
		dumpStore(os.Stderr, ip)
	}

	return log.ExitCode()
}

// writeResult prints the residual neutral-buffer text. On a terminal, a
// trailing newline is added for readability when the output is non-empty
// and doesn't already end in one; redirected output is left exactly as
// produced, since a consumer piping trac64's stdout should see exactly what
// Execute returned.
func writeResult(f *os.File, out string) {
	fmt.Fprint(f, out)
	if term.IsTerminal(int(f.Fd())) && out != "" && out[len(out)-1] != '\n' {
		fmt.Fprintln(f)
	}
}

func dumpStore(w *os.File, ip *trac64.Interpreter) {
	fmt.Fprintln(w, "--- forms ---")
	for _, name := range ip.FormNames() {
		body, _ := ip.FormBody(name)
		fmt.Fprintf(w, "%s: %s\n", name, body)
	}
}

type namedFile struct {
	*os.File
	name string
}

func (nf namedFile) Name() string { return nf.name }

type stringSlice []string

func (s *stringSlice) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

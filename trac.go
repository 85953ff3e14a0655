/*
Package trac64 implements an interpreter for a text-rewriting macro language
in the TRAC T64 tradition: a program is a character stream that is
repeatedly scanned and rewritten until no invocations remain. Every
construct (arithmetic, conditionals, recursion) is expressed as macro
calls whose arguments are themselves unevaluated text until demanded.

Interpreter.Execute is close to a pure function from source text plus a
prior form store to output text plus a new form store; the command-line
entry point (cmd/trac64) is a thin host around it that owns argv parsing
and source assembly.
*/
package trac64

import (
	"io"
	"io/ioutil"

	"github.com/tracvm/trac64/internal/flushio"
	"github.com/tracvm/trac64/internal/panicerr"
)

// Primitive is a built-in handler. It reads its positional arguments through
// the interpreter handle it is given (Interpreter.Arg) and returns the text
// value to deliver. A primitive must not retain references to its argument
// strings' backing storage beyond its own return, though in this
// implementation arguments are already independent string copies.
type Primitive func(ip *Interpreter) string

// Interpreter is a TRAC64 handle: a persistent form store and primitive
// registry, plus the (per-call, torn down after each Execute) processor
// state. The form store and registry are interpreter-scoped, not
// process-global: a host needing isolated namespaces constructs multiple
// Interpreters.
type Interpreter struct {
	proc

	store      *store
	primitives map[string]Primitive
	maxForms   int

	out     flushio.WriteFlusher
	closers []io.Closer

	logfn func(mess string, args ...interface{})
}

// New constructs an Interpreter with the built-in primitives registered,
// then applies opts in order; later options (including WithPrimitive) may
// override earlier ones, including the built-ins.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		store:      newStore(),
		primitives: make(map[string]Primitive, len(builtins)),
	}
	ip.out = flushio.NewWriteFlusher(ioutil.Discard)
	for name, fn := range builtins {
		ip.primitives[name] = fn
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(ip)
		}
	}
	return ip
}

// Close releases any closers registered by WithOutput/WithTee (e.g. an
// *os.File passed by the host), in reverse registration order.
func (ip *Interpreter) Close() (err error) {
	for i := len(ip.closers) - 1; i >= 0; i-- {
		if cerr := ip.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Execute scans and rewrites source to completion, returning the residual
// neutral-buffer text. It never panics: an internal fault degrades to a
// record abort, the same disposition as a stray ')' or an unbalanced '('.
// The form store and any writes to the host sink persist regardless of how
// the call ends; only the transient scan state is torn down.
func (ip *Interpreter) Execute(source string) string {
	ip.proc.reset(source)

	err := panicerr.Recover("trac.Execute", func() error {
		ip.run()
		return nil
	})
	if err != nil {
		ip.logf("!", "aborting on internal fault: %v", err)
		ip.proc.clear()
	}

	out := string(ip.proc.neutral)
	if ferr := ip.out.Flush(); ferr != nil {
		ip.logf("!", "flush error: %v", ferr)
	}
	ip.proc.clear()
	return out
}

// Arg returns the kth positional argument (0-indexed) of the primitive call
// currently executing, or "" if i is out of range.
func (ip *Interpreter) Arg(i int) string {
	if i < 0 || i >= len(ip.proc.args) {
		return ""
	}
	return ip.proc.args[i]
}

// Argc returns the number of positional arguments visible to the currently
// executing primitive.
func (ip *Interpreter) Argc() int { return len(ip.proc.args) }

// invoke looks up name in the primitive registry and runs it with args
// visible through Arg/Argc. Unknown names, an empty name, and any primitive
// panic all yield "" and never escape invoke.
func (ip *Interpreter) invoke(name string, args []string) (value string) {
	ip.proc.args = args
	defer func() { ip.proc.args = nil }()

	if name == "" {
		return ""
	}
	fn, ok := ip.primitives[name]
	if !ok {
		ip.logf("?", "unknown primitive %q", name)
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			ip.logf("!", "primitive %q paniced: %v", name, r)
			value = ""
		}
	}()
	return fn(ip)
}

// FormNames returns the names of all forms currently in the store, in
// insertion order. It is a read-only introspection hook for hosts (e.g. the
// cmd/trac64 -dump flag); TRAC64 programs use the ln primitive instead.
func (ip *Interpreter) FormNames() []string {
	names := ip.store.allNames()
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// FormBody returns a human-readable rendering of a form's body (literal
// text interspersed with "#<n>" for each marker) and whether the form
// exists. It never fills markers from arguments; use cl from within a
// program for that.
func (ip *Interpreter) FormBody(name string) (string, bool) {
	body, ok := ip.store.lookup(name)
	if !ok {
		return "", false
	}
	return renderForm(body), true
}

func (ip *Interpreter) logf(mark, mess string, args ...interface{}) {
	if ip.logfn == nil {
		return
	}
	if len(args) > 0 {
		ip.logfn(mark+" "+mess, args...)
	} else {
		ip.logfn(mark + " " + mess)
	}
}

func (ip *Interpreter) traceStep() {
	if ip.logfn == nil {
		return
	}
	p := &ip.proc
	var ch rune
	if p.scan < len(p.active) {
		ch = p.active[p.scan]
	}
	ip.logf(">", "scan %q depth=%d active=%d neutral=%d",
		ch, len(p.frames), len(p.active)-p.scan, len(p.neutral))
}

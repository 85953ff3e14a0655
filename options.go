package trac64

import (
	"io"

	"github.com/tracvm/trac64/internal/flushio"
)

// Option configures an Interpreter at construction time.
type Option interface{ apply(ip *Interpreter) }

// WithOutput binds the host write sink that the ps primitive writes to. If
// unset, ps output is discarded.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithTee additionally mirrors ps output to w, alongside whatever
// WithOutput (or the previous WithTee) already established.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithLogf installs a leveled trace callback; the processor logs one line
// per scan-loop dispatch, and primitive/abort faults are logged, whenever
// logfn is non-nil.
func WithLogf(logfn func(mess string, args ...interface{})) Option {
	return logfnOption(logfn)
}

// WithPrimitive registers or overrides a single primitive by name,
// including built-in names.
func WithPrimitive(name string, fn Primitive) Option {
	return primitiveOption{name: name, fn: fn}
}

// WithPrimitives registers or overrides a batch of primitives.
func WithPrimitives(fns map[string]Primitive) Option { return primitivesOption(fns) }

// WithMaxForms caps the number of distinct form names the store will hold;
// a ds that would create a form beyond the cap is silently ignored, the
// same disposition as ds given an empty name. limit <= 0 means unlimited
// (the default).
func WithMaxForms(limit int) Option { return maxFormsOption(limit) }

type outputOption struct{ io.Writer }

func (o outputOption) apply(ip *Interpreter) {
	if ip.out != nil {
		ip.out.Flush()
	}
	ip.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		ip.closers = append(ip.closers, cl)
	}
}

type teeOption struct{ io.Writer }

func (o teeOption) apply(ip *Interpreter) {
	ip.out = flushio.WriteFlushers(ip.out, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		ip.closers = append(ip.closers, cl)
	}
}

type logfnOption func(mess string, args ...interface{})

func (fn logfnOption) apply(ip *Interpreter) { ip.logfn = fn }

type primitiveOption struct {
	name string
	fn   Primitive
}

func (o primitiveOption) apply(ip *Interpreter) {
	if o.name == "" || o.fn == nil {
		return
	}
	ip.primitives[o.name] = o.fn
}

type primitivesOption map[string]Primitive

func (fns primitivesOption) apply(ip *Interpreter) {
	for name, fn := range fns {
		if name == "" || fn == nil {
			continue
		}
		ip.primitives[name] = fn
	}
}

type maxFormsOption int

func (n maxFormsOption) apply(ip *Interpreter) { ip.maxForms = int(n) }

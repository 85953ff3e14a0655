package trac64

// callMode names how a frame's result is delivered back into the scan.
type callMode int

const (
	modeActive callMode = iota
	modeNeutral
)

// span is a half-open [start, end) index range into neutral, delimiting one
// completed call argument.
type span struct{ start, end int }

// frame is per-pending-invocation bookkeeping; frames form a LIFO stack
// mirroring invocation nesting. begin is the index in neutral where the
// call's first argument began to accumulate.
type frame struct {
	begin        int
	mode         callMode
	slices       []span
	currentStart int
}

// proc holds the transient scanning state, reset at the start of every
// Execute call and torn down at its end. It never survives across calls;
// the form store is what persists (see store in form.go).
type proc struct {
	active  []rune
	scan    int
	neutral []rune
	frames  []frame
	args    []string
}

func (p *proc) reset(source string) {
	p.active = []rune(source)
	p.scan = 0
	p.neutral = p.neutral[:0]
	p.frames = p.frames[:0]
	p.args = nil
}

// clear empties every transient buffer, as required on a record abort: the
// form store is not rolled back, but active, neutral, frames, and args are.
func (p *proc) clear() {
	p.active = nil
	p.scan = 0
	p.neutral = p.neutral[:0]
	p.frames = p.frames[:0]
	p.args = nil
}

func isIdle(r rune) bool {
	switch r {
	case '\t', '\n', '\r', '\'':
		return true
	}
	return false
}

// peekAt reports whether active[scan+offset] == want, without mutating scan.
func (p *proc) peekAt(offset int, want rune) bool {
	i := p.scan + offset
	return i < len(p.active) && p.active[i] == want
}

// run drives the scan loop to completion: either active is exhausted (the
// normal case) or an abort clears the processor early. Side effects on the
// form store and the host sink happen as calls terminate, in the order they
// terminate.
func (ip *Interpreter) run() {
	p := &ip.proc
	for p.scan < len(p.active) {
		ip.traceStep()

		ch := p.active[p.scan]
		switch {
		case isIdle(ch):
			p.scan++

		case ch == '(':
			if !ip.quote() {
				p.clear()
				return
			}

		case ch == ',':
			p.scan++
			ip.argBoundary()

		case ch == '#':
			switch {
			case p.peekAt(1, '('):
				p.scan += 2
				ip.pushFrame(modeActive)
			case p.peekAt(1, '#') && p.peekAt(2, '('):
				p.scan += 3
				ip.pushFrame(modeNeutral)
			default:
				ip.emit(ch)
			}

		case ch == ')':
			p.scan++
			if !ip.endFrame() {
				p.clear()
				return
			}

		default:
			ip.emit(ch)
		}
	}
}

// emit moves one character from active to neutral. scan still advances by
// one position either way: deleting the consumed character from a mutating
// active buffer would expose the next character at the same index, which is
// exactly what advancing a read-only cursor achieves.
func (ip *Interpreter) emit(ch rune) {
	ip.proc.neutral = append(ip.proc.neutral, ch)
	ip.proc.scan++
}

// quote consumes a balanced (...) pair starting at the '(' under scan,
// copying its interior to neutral verbatim without interpreting it, and
// deleting both delimiters. Returns false if no matching ')' is found before
// active runs out, signaling the caller to abort.
func (ip *Interpreter) quote() bool {
	p := &ip.proc
	p.scan++ // delete '('
	depth := 1
	for p.scan < len(p.active) {
		ch := p.active[p.scan]
		switch ch {
		case '(':
			depth++
			p.neutral = append(p.neutral, ch)
			p.scan++
		case ')':
			depth--
			p.scan++
			if depth == 0 {
				return true
			}
			p.neutral = append(p.neutral, ch)
		default:
			p.neutral = append(p.neutral, ch)
			p.scan++
		}
	}
	return false
}

// pushFrame opens a new invocation frame at the current end of neutral.
func (ip *Interpreter) pushFrame(mode callMode) {
	begin := len(ip.proc.neutral)
	ip.proc.frames = append(ip.proc.frames, frame{
		begin:        begin,
		mode:         mode,
		currentStart: begin,
	})
}

// argBoundary closes the current argument slice of the innermost frame and
// starts the next one. A stray ',' with no open frame is silently ignored.
func (ip *Interpreter) argBoundary() {
	p := &ip.proc
	if len(p.frames) == 0 {
		return
	}
	f := &p.frames[len(p.frames)-1]
	f.slices = append(f.slices, span{f.currentStart, len(p.neutral)})
	f.currentStart = len(p.neutral)
}

// endFrame terminates the innermost frame: it closes the final argument
// slice, extracts the call's arguments from neutral, excises the call's
// accumulated body, runs the named primitive, and delivers its result per
// the frame's mode. Returns false if there is no open frame, signaling the
// caller to abort on a stray ')'.
func (ip *Interpreter) endFrame() bool {
	p := &ip.proc
	if len(p.frames) == 0 {
		return false
	}

	last := len(p.frames) - 1
	f := p.frames[last]
	p.frames = p.frames[:last]

	finalEnd := len(p.neutral)
	f.slices = append(f.slices, span{f.currentStart, finalEnd})

	args := make([]string, len(f.slices))
	for i, sl := range f.slices {
		args[i] = string(p.neutral[sl.start:sl.end])
	}

	p.neutral = p.neutral[:f.begin]

	var name string
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	value := ip.invoke(name, args)

	switch f.mode {
	case modeNeutral:
		p.neutral = append(p.neutral, []rune(value)...)
	default: // modeActive
		rest := p.active[p.scan:]
		next := make([]rune, 0, len(value)+len(rest))
		next = append(next, []rune(value)...)
		next = append(next, rest...)
		p.active = next
		p.scan = 0
	}

	return true
}

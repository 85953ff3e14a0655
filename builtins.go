package trac64

import (
	"math/big"
	"strings"
)

// builtins is the primitive registry New seeds every Interpreter with;
// WithPrimitive/WithPrimitives may override any of these.
var builtins = map[string]Primitive{
	"ds": dsPrimitive,
	"ss": ssPrimitive,
	"cl": clPrimitive,
	"eq": eqPrimitive,
	"ml": mlPrimitive,
	"ad": adPrimitive,
	"su": suPrimitive,
	"ln": lnPrimitive,
	"dd": ddPrimitive,
	"ps": psPrimitive,
}

// dsPrimitive: #(ds,N,B) defines or replaces form N with literal body B,
// dropping any markers a prior ss had installed. An empty N is a no-op.
func dsPrimitive(ip *Interpreter) string {
	name, body := ip.Arg(0), ip.Arg(1)
	ip.defineForm(name, body)
	return ""
}

func (ip *Interpreter) defineForm(name, body string) {
	if name == "" {
		return
	}
	if ip.maxForms > 0 {
		if _, exists := ip.store.lookup(name); !exists && len(ip.store.names) >= ip.maxForms {
			return
		}
	}
	ip.store.define(name, body)
}

// ssPrimitive: #(ss,N,P1,P2,...) installs ordinal segment markers in form N,
// one per non-empty Pi, left to right. Unknown N is a no-op.
func ssPrimitive(ip *Interpreter) string {
	name := ip.Arg(0)
	for i := 1; i < ip.Argc(); i++ {
		ip.store.replace(name, ip.Arg(i), i)
	}
	return ""
}

// clPrimitive: #(cl,N,A1,A2,...) materializes form N's body, filling
// Marker(k) from Ak (missing -> "", excess ignored). Unknown N yields "".
func clPrimitive(ip *Interpreter) string {
	name := ip.Arg(0)
	body, ok := ip.store.lookup(name)
	if !ok {
		return ""
	}
	args := make([]string, 0, ip.Argc())
	for i := 1; i < ip.Argc(); i++ {
		args = append(args, ip.Arg(i))
	}
	return materialize(body, args)
}

// eqPrimitive: #(eq,A,B,T,F) returns T if A equals B character-wise, else
// F. Missing arguments default to "".
func eqPrimitive(ip *Interpreter) string {
	if ip.Arg(0) == ip.Arg(1) {
		return ip.Arg(2)
	}
	return ip.Arg(3)
}

// mlPrimitive: #(ml,A,B) returns the product of A and B, parsed as signed
// integer literals (empty -> 0). Arbitrary-precision: these never overflow.
func mlPrimitive(ip *Interpreter) string { return bigOp(ip, (*big.Int).Mul) }

// adPrimitive: #(ad,A,B) returns the sum of A and B.
func adPrimitive(ip *Interpreter) string { return bigOp(ip, (*big.Int).Add) }

// suPrimitive: #(su,A,B) returns A minus B.
func suPrimitive(ip *Interpreter) string { return bigOp(ip, (*big.Int).Sub) }

func bigOp(ip *Interpreter, op func(z, x, y *big.Int) *big.Int) string {
	a, ok := parseBigInt(ip.Arg(0))
	if !ok {
		return ""
	}
	b, ok := parseBigInt(ip.Arg(1))
	if !ok {
		return ""
	}
	return op(new(big.Int), a, b).String()
}

// parseBigInt treats an empty argument as 0 and rejects any other
// non-numeric input; callers turn a rejection into an empty result.
func parseBigInt(s string) (*big.Int, bool) {
	if s == "" {
		return big.NewInt(0), true
	}
	return new(big.Int).SetString(s, 10)
}

// lnPrimitive: #(ln,S) returns the names of all forms, in insertion order,
// joined by S.
func lnPrimitive(ip *Interpreter) string {
	return strings.Join(ip.store.allNames(), ip.Arg(0))
}

// ddPrimitive: #(dd,N1,N2,...) deletes each named form if present; an empty
// name is skipped. Returns "".
func ddPrimitive(ip *Interpreter) string {
	for i := 0; i < ip.Argc(); i++ {
		ip.store.delete(ip.Arg(i))
	}
	return ""
}

// psPrimitive: #(ps,X) writes X to the host sink with no trailing newline.
// Returns "".
func psPrimitive(ip *Interpreter) string {
	x := ip.Arg(0)
	if x == "" {
		return ""
	}
	if _, err := ip.out.Write([]byte(x)); err != nil {
		ip.logf("!", "ps write error: %v", err)
	}
	return ""
}

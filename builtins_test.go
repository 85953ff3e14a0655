package trac64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmeticPrimitives(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want string
	}{
		{"add", `#(ad,3,4)'`, "7"},
		{"subtract", `#(su,10,4)'`, "6"},
		{"multiply", `#(ml,6,7)'`, "42"},
		{"negative operands", `#(ad,-5,-7)'`, "-12"},
		{"missing args default to 0", `#(ad,,)'`, "0"},
		{"one missing arg defaults to 0", `#(su,5,)'`, "5"},
		{"non-numeric input yields empty", `#(ad,x,1)'`, ""},
		{"factorial-scale multiply stays exact", `#(ml,30414093201713378043612608166064768844377641568960512000000000000,50)'`,
			"1520704660085668902180630408303238442218882078448025600000000000000"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ip := New()
			assert.Equal(t, tc.want, ip.Execute(tc.src))
		})
	}
}

func TestEqPrimitive(t *testing.T) {
	ip := New()
	assert.Equal(t, "yes", ip.Execute(`#(eq,cat,cat,yes,no)'`))
	assert.Equal(t, "no", ip.Execute(`#(eq,cat,dog,yes,no)'`))
	assert.Equal(t, "", ip.Execute(`#(eq,cat,cat)'`)) // missing T defaults to ""
}

func TestLnPrimitive(t *testing.T) {
	ip := New()
	assert.Equal(t, "", ip.Execute(`#(ln,(,))'`)) // no forms yet
	ip.Execute(`#(ds,Alpha,1)'`)
	ip.Execute(`#(ds,Beta,2)'`)
	assert.Equal(t, "Alpha-Beta", ip.Execute(`#(ln,-)'`))
}

func TestDdPrimitive(t *testing.T) {
	ip := New()
	ip.Execute(`#(ds,Temp,value)'`)
	assert.Equal(t, "value", ip.Execute(`#(cl,Temp)'`))
	ip.Execute(`#(dd,Temp)'`)
	assert.Equal(t, "", ip.Execute(`#(cl,Temp)'`))

	// dd on an unknown name, and with an empty name, is a silent no-op
	ip.Execute(`#(ds,Keep,ok)'`)
	ip.Execute(`#(dd,Nope,,Keep)'`)
	assert.Equal(t, "", ip.Execute(`#(cl,Keep)'`))
}

func TestArgumentsAreFlattenedBeforeThePrimitiveRuns(t *testing.T) {
	var got string
	ip := New(WithPrimitive("capture", func(ip *Interpreter) string {
		got = ip.Arg(0)
		return ""
	}))
	ip.Execute(`#(capture,hello (#(nope)) world)'`)
	assert.Equal(t, "hello #(nope) world", got,
		"protective parens keep the nested call literal, so capture sees plain text")
}

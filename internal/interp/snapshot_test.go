package interp

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestProgramOutputSnapshots runs a handful of representative programs and
// checks their rendered result value against a stored snapshot, the way the
// fixture suite this interpreter's style is drawn from does for its
// pass-case scripts.
func TestProgramOutputSnapshots(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{
			name: "fibonacci",
			source: `
conduit fib(n) @
	if n < 2 @ give n #
	give fib(n - 1) + fib(n - 2)
#
fib(10)
`,
		},
		{
			name: "class_dispatch",
			source: `
make Shape @
	conduit area() @ give 0 #
#
make Square extend Shape @
	side
	build(side) @ me.side = side #
	conduit area() @ give me.side * me.side #
#
Square(4).area()
`,
		},
		{
			name: "pipeline_and_template",
			source: `
conduit shout(s) @ give s + "!" #
let name = "world" -> shout
` + "`hello $@name#`",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := run(t, c.source)
			snaps.MatchSnapshot(t, v.String())
		})
	}
}

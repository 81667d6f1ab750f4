package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gopoly"
)

func run(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	d := New(gopoly.NewCalculator(), strings.NewReader(input), &out, Options{Prompt: ">", Color: "never"})
	require.NoError(t, d.Run(context.Background()))
	return out.String()
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		line, cmd, p1, p2 string
	}{
		{"add", "add", "", ""},
		{"evaluate 1,5", "evaluate", "1", "5"},
		{"evaluate 2, -3\r", "evaluate", "2", "-3"},
		{"getDegree 1", "getDegree", "1", ""},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		cmd, p1, p2 := splitCommand(tt.line)
		assert.Equal(t, tt.cmd, cmd, tt.line)
		assert.Equal(t, tt.p1, p1, tt.line)
		assert.Equal(t, tt.p2, p2, tt.line)
	}
}

func TestRun_Transcript(t *testing.T) {
	input := strings.Join([]string{
		"input",
		"4x^3 +2x^2 -6x^1 +8x^0",
		"1x^1 -1x^0",
		"add",
		"sub",
		"mul",
		"evaluate 1,2",
		"getDegree 2",
		"equal",
		"bogus",
		"evaluate 3,1",
		"evaluate a,1",
		"exit",
		"display",
	}, "\n") + "\n"

	want := "Enter Exp1: Enter Exp2: \n" +
		"Exp1: +4x^3 +2x^2 -6x^1 +8x^0\n" +
		"Exp2: +1x^1 -1x^0\n" +
		"Exp1 + Exp2 = +4x^3 +2x^2 -5x^1 +7x^0\n" +
		"Exp1 - Exp2 = +4x^3 +2x^2 -7x^1 +9x^0\n" +
		"Exp1 * Exp2 = +4x^4 -2x^3 -8x^2 +14x^1 -8x^0\n" +
		"p(x) = +4x^3 +2x^2 -6x^1 +8x^0\n" +
		"p(2) = 36\n" +
		"The degree of Exp2 is: 1\n" +
		"Not equal\n" +
		"Error: invalid command \"bogus\", type help for a list\n" +
		"Error: invalid expression id: 3\n" +
		"Error: invalid arguments: evaluate <ExpID,int>: bad id \"a\"\n"

	assert.Equal(t, want, run(t, input))
}

func TestRun_InvalidInputKeepsLooping(t *testing.T) {
	out := run(t, "input\n3x^2 4x^1\n1x^0\ndisplay\nquit\n")
	assert.Contains(t, out, "Error: invalid expression for Exp1: parse \"3x^2 4x^1\"")
	assert.True(t, strings.HasSuffix(out, "Exp1: 0\nExp2: 0\n"), out)
}

func TestRun_InputTruncated(t *testing.T) {
	out := run(t, "input\n1x^1\n")
	assert.Contains(t, out, "Error: "+ErrNoInput.Error())
}

func TestRun_DegreeOfEmpty(t *testing.T) {
	out := run(t, "getDegree 1\ngetDegree 5\ngetDegree\n")
	assert.Equal(t,
		"The degree of Exp1 is: -1\n"+
			"Error: invalid expression id: 5\n"+
			"Error: invalid arguments: getDegree <ExpID>: bad id \"\"\n",
		out)
}

func TestRun_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("+1x^1 +1x^0\r\n+1x^1 -1x^0\r\n"), 0o644))

	out := run(t, "read "+path+"\nmul\n")
	assert.Equal(t,
		"Exp1: +1x^1 +1x^0\n"+
			"Exp2: +1x^1 -1x^0\n"+
			"Exp1 * Exp2 = +1x^2 -1x^0\n",
		out)
}

func TestRun_ReadCRLFCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("+2x^1\n+3x^0\n"), 0o644))

	out := run(t, "read "+path+"\r\nadd\r\n")
	assert.Equal(t,
		"Exp1: +2x^1\n"+
			"Exp2: +3x^0\n"+
			"Exp1 + Exp2 = +2x^1 +3x^0\n",
		out)
}

func TestRun_MulHugeExponentsKeepsLooping(t *testing.T) {
	out := run(t, "input\n1x^9223372036854775807 +1x^0\n1x^1\nmul\ndisplay\n")
	assert.Equal(t,
		"Enter Exp1: Enter Exp2: \n"+
			"Exp1: +1x^9223372036854775807 +1x^0\n"+
			"Exp2: +1x^1\n"+
			"Exp1 * Exp2 = +1x^1\n"+
			"Exp1: +1x^9223372036854775807 +1x^0\n"+
			"Exp2: +1x^1\n",
		out)
}

func TestRun_ReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	out := run(t, "read "+path+"\n")
	assert.True(t, strings.HasPrefix(out, "Exp1: 0\nExp2: 0\nError: open "), out)
}

func TestRun_Help(t *testing.T) {
	out := run(t, "help\n")
	assert.Contains(t, out, "sub                  : Subtract the Polynomials (Exp1 - Exp2)")
	assert.Contains(t, out, "evaluate <ExpID,int>")
}

func TestRun_EmptyLinesIgnored(t *testing.T) {
	assert.Equal(t, "", run(t, "\n\n\n"))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := New(gopoly.NewCalculator(), strings.NewReader("add\n"), &bytes.Buffer{}, Options{})
	assert.ErrorIs(t, d.Run(ctx), context.Canceled)
}

func TestExec_Quit(t *testing.T) {
	d := New(gopoly.NewCalculator(), strings.NewReader(""), &bytes.Buffer{}, Options{})
	for _, cmd := range []string{"exit", "quit"} {
		quit, err := d.Exec(cmd)
		require.NoError(t, err)
		assert.True(t, quit, cmd)
	}
	quit, err := d.Exec("add")
	require.NoError(t, err)
	assert.False(t, quit)
}

func TestStyles(t *testing.T) {
	var buf bytes.Buffer
	plain := NewStyles("auto", &buf)
	assert.Equal(t, "+1x^0", plain.Result("+1x^0"), "a buffer is not a terminal")

	colored := NewStyles("always", &buf)
	got := colored.Error("boom")
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "boom")

	multi := colored.Result("a\nb")
	assert.Equal(t, 1, strings.Count(multi, "\n"))
}

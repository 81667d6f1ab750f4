// Package repl implements the line-oriented polycalc command loop.
//
// Each input line is "command p1,p2": the command runs to the first space,
// p1 to the next comma and p2 is the remainder.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/njchilds90/gopoly"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrInvalidArgs    = errors.New("invalid arguments")
	ErrNoInput        = errors.New("input ended before both expressions were read")
)

type Options struct {
	Prompt string
	Color  string // auto, always or never
	Logger *slog.Logger
}

// Dispatcher executes calculator commands against a single session.
type Dispatcher struct {
	calc        *gopoly.Calculator
	in          *bufio.Scanner
	out         io.Writer
	styles      Styles
	prompt      string
	interactive bool
	log         *slog.Logger
}

func New(calc *gopoly.Calculator, in io.Reader, out io.Writer, opts Options) *Dispatcher {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		calc:        calc,
		in:          bufio.NewScanner(in),
		out:         out,
		styles:      NewStyles(opts.Color, out),
		prompt:      opts.Prompt,
		interactive: isTerminal(in),
		log:         log,
	}
}

// Interactive reports whether input comes from a terminal.
func (d *Dispatcher) Interactive() bool { return d.interactive }

// Run reads and executes commands until exit, end of input or ctx is
// cancelled. Command errors are printed and the loop continues.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.interactive {
			fmt.Fprint(d.out, d.prompt)
		}
		if !d.in.Scan() {
			return d.in.Err()
		}
		quit, err := d.Exec(d.in.Text())
		if err != nil {
			d.log.Debug("command failed", "line", d.in.Text(), "err", err)
			fmt.Fprintln(d.out, d.styles.Error("Error: "+err.Error()))
		}
		if quit {
			return nil
		}
	}
}

func splitCommand(line string) (cmd, p1, p2 string) {
	line = strings.TrimSuffix(line, "\r")
	cmd, rest, _ := strings.Cut(line, " ")
	p1, p2, _ = strings.Cut(rest, ",")
	return cmd, strings.TrimSpace(p1), strings.TrimSpace(p2)
}

// Exec runs a single command line. quit is true for exit and quit.
func (d *Dispatcher) Exec(line string) (quit bool, err error) {
	cmd, p1, p2 := splitCommand(line)
	switch cmd {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case "help":
		ListCommands(d.out)
	case "display":
		fmt.Fprint(d.out, d.calc.Display())
	case "input":
		return false, d.input()
	case "add":
		d.printResult("Exp1 + Exp2 = ", d.calc.Add())
	case "sub":
		d.printResult("Exp1 - Exp2 = ", d.calc.Sub())
	case "mul":
		d.printResult("Exp1 * Exp2 = ", d.calc.Mul())
	case "evaluate":
		return false, d.evaluate(p1, p2)
	case "getDegree":
		return false, d.degree(p1)
	case "read":
		_, path, _ := strings.Cut(strings.TrimSuffix(line, "\r"), " ")
		err := d.calc.Read(strings.TrimSpace(path))
		fmt.Fprint(d.out, d.calc.Display())
		return false, err
	case "equal":
		if d.calc.Equal() {
			fmt.Fprintln(d.out, d.styles.Result("Equal"))
		} else {
			fmt.Fprintln(d.out, d.styles.Result("Not equal"))
		}
	default:
		return false, fmt.Errorf("%w %q, type help for a list", ErrInvalidCommand, cmd)
	}
	return false, nil
}

func (d *Dispatcher) printResult(label, value string) {
	fmt.Fprintln(d.out, d.styles.Label(label)+d.styles.Result(value))
}

func (d *Dispatcher) readLine(prompt string) (string, bool) {
	fmt.Fprint(d.out, prompt)
	if !d.in.Scan() {
		return "", false
	}
	return d.in.Text(), true
}

func (d *Dispatcher) input() error {
	s1, ok := d.readLine("Enter Exp1: ")
	if !ok {
		return ErrNoInput
	}
	s2, ok := d.readLine("Enter Exp2: ")
	if !ok {
		return ErrNoInput
	}
	if !d.interactive {
		fmt.Fprintln(d.out)
	}
	if err := d.calc.Input(s1, s2); err != nil {
		return err
	}
	fmt.Fprint(d.out, d.calc.Display())
	return nil
}

func (d *Dispatcher) evaluate(p1, p2 string) error {
	id, err := strconv.Atoi(p1)
	if err != nil {
		return fmt.Errorf("%w: evaluate <ExpID,int>: bad id %q", ErrInvalidArgs, p1)
	}
	x, err := strconv.Atoi(p2)
	if err != nil {
		return fmt.Errorf("%w: evaluate <ExpID,int>: bad x %q", ErrInvalidArgs, p2)
	}
	text, v, err := d.calc.Evaluate(gopoly.Selector(id), x)
	if err != nil {
		return err
	}
	d.printResult("p(x) = ", text)
	d.printResult(fmt.Sprintf("p(%d) = ", x), strconv.Itoa(v))
	return nil
}

func (d *Dispatcher) degree(p1 string) error {
	id, err := strconv.Atoi(p1)
	if err != nil {
		return fmt.Errorf("%w: getDegree <ExpID>: bad id %q", ErrInvalidArgs, p1)
	}
	deg, err := d.calc.Degree(gopoly.Selector(id))
	if err != nil {
		return err
	}
	d.printResult(fmt.Sprintf("The degree of %s is: ", gopoly.Selector(id)), strconv.Itoa(deg))
	return nil
}

// ListCommands prints the command reference.
func ListCommands(w io.Writer) {
	fmt.Fprint(w, `List of available Commands:
display              : Display the Polynomials
input                : Input Polynomial expressions from keyboard
add                  : Add the Polynomials (Exp1 + Exp2)
sub                  : Subtract the Polynomials (Exp1 - Exp2)
mul                  : Multiply the polynomials (Exp1 * Exp2)
evaluate <ExpID,int> : Evaluate a polynomial for a specific value of x
getDegree <ExpID>    : Returns the degree of a given polynomial.
equal                : Check whether Exp1 and Exp2 are identical
read <file_name>     : Load Exp1 and Exp2 from the first two lines of <file>
help                 : Display the list of available commands
exit                 : Exit the Program
`)
}

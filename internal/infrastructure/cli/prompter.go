package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// Prompter implements Confirmer and ModeChooser using stdin/stdout.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio.
// Prompts are only enabled when stdin is a terminal unless a reader is supplied.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := in != nil
	if in == nil {
		in = os.Stdin
		interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Enabled indicates the prompter can ask questions.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// Confirm asks a y/N question. Anything but y or yes declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", nil
}

// ChooseMode asks for 1 (whole file) or 2 (per endpoint) until a valid answer arrives.
func (p *Prompter) ChooseMode() (domain.RunMode, error) {
	for {
		fmt.Fprintln(p.out, "Select documentation mode:")
		fmt.Fprintf(p.out, "  1) %s - document the whole API file in one call\n", domain.RunModeBulk.Label())
		fmt.Fprintf(p.out, "  2) %s - document each endpoint separately\n", domain.RunModeAPIByAPI.Label())
		fmt.Fprint(p.out, "Choice [1/2]: ")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "1" || line == "2" {
			return domain.ParseRunMode(line)
		}
		fmt.Fprintf(p.out, "Invalid choice %q.\n", line)
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

var (
	_ ports.Confirmer   = (*Prompter)(nil)
	_ ports.ModeChooser = (*Prompter)(nil)
)

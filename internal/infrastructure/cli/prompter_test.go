package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/doeshing/apidocgen/internal/domain"
)

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader(tt.input), &out)
		got, err := p.Confirm("Include /hello?")
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Include /hello? [y/N]") {
			t.Fatalf("unexpected prompt %q", out.String())
		}
	}
}

func TestPrompterConfirmEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard)
	if _, err := p.Confirm("?"); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestPrompterChooseModeRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("3\n2\n"), &out)
	mode, err := p.ChooseMode()
	if err != nil {
		t.Fatalf("ChooseMode error: %v", err)
	}
	if mode != domain.RunModeAPIByAPI {
		t.Fatalf("mode = %s", mode)
	}
	if !strings.Contains(out.String(), `Invalid choice "3"`) {
		t.Fatalf("missing retry message: %q", out.String())
	}
}

func TestPrompterEnabledWithReader(t *testing.T) {
	if !NewPrompter(strings.NewReader(""), io.Discard).Enabled() {
		t.Fatal("prompter with explicit reader should be enabled")
	}
}

func TestResolveMode(t *testing.T) {
	chooser := NewPrompter(strings.NewReader("1\n"), io.Discard)
	tests := []struct {
		name      string
		flag      string
		preferred string
		chooser   *Prompter
		want      domain.RunMode
	}{
		{"flag wins", "bulk", "api_by_api", chooser, domain.RunModeBulk},
		{"config next", "", "api_by_api", chooser, domain.RunModeAPIByAPI},
		{"asks on terminal", "", "", chooser, domain.RunModeBulk},
		{"non-interactive default", "", "", nil, domain.RunModeAPIByAPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveMode(tt.flag, tt.preferred, tt.chooser)
			if err != nil {
				t.Fatalf("resolveMode error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("resolveMode = %s, want %s", got, tt.want)
			}
		})
	}
}

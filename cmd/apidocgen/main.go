package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/doeshing/apidocgen/internal/infrastructure/cli"
)

func main() {
	// A missing .env is normal; keys usually come from the shell.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cli.Options{Verbose: isVerbose(os.Args[1:]), ConfigPath: configFlag(os.Args[1:])}

	root, closeFn, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fail(err)
	}

	err = root.ExecuteContext(ctx)
	if closeErr := closeFn(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

// isVerbose is decided before cobra parses flags because the logger is built first.
func isVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "--verbose" || arg == "-v" || arg == "--verbose=true" {
			return true
		}
	}
	return false
}

func configFlag(args []string) string {
	for i, arg := range args {
		if value, ok := strings.CutPrefix(arg, "--config="); ok {
			return value
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

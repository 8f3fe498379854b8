package main

import (
	"context"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/keyprint/internal/state"
)

// PrintMain sends one job to the printer and exits. Useful to check
// wiring without touching the keypad: keyprint print hello 42
func PrintMain(ctx context.Context, config *state.Config, args []string) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)

	prn, err := g.Printer()
	if err != nil {
		return errors.Annotate(err, "print mode")
	}
	defer prn.Close()

	text := ""
	if len(args) > 1 {
		// args[0] is the command name
		text = strings.Join(args[1:], " ")
	}
	return prn.PrintLine(text)
}

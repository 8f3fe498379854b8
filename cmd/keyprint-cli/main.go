// Manual testing tool for the printer path and the digit collector.
// Talks to the real printer device, keypad events are injected by hand.
package main

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	prompt "github.com/c-bata/go-prompt"
	"github.com/temoto/keyprint/hardware/printer"
	"github.com/temoto/keyprint/helpers/cli"
	"github.com/temoto/keyprint/internal/collect"
	"github.com/temoto/keyprint/internal/keymap"
	"github.com/temoto/keyprint/internal/types"
	"github.com/temoto/keyprint/log2"
)

const usage = `syntax: commands separated by newline
- print TEXT  send TEXT to printer as one job
- key N       inject key press with scan code N (digit or enter per default keymap)
- buffer      show collected digits
- feed        advance paper with an empty job
- sN          pause for N milliseconds
- log=yes     debug logging
- log=no      errors only
`

var log = log2.NewStderr(log2.LDebug)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	devicePath := cmdline.String("device", "/dev/usb/lp0", "printer device path")
	if err := cmdline.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	log.SetFlags(log2.LInteractiveFlags)

	prn, err := printer.NewDevice(log, *devicePath)
	if err != nil {
		log.Fatal(err)
	}
	defer prn.Close()

	col := collect.NewCollector(log, keymap.Default(), prn)

	log.Infof(usage)
	cli.MainLoop("keyprint-cli", newExecutor(col, prn), newCompleter())
}

func newExecutor(col *collect.Collector, prn *printer.Device) func(string) {
	return func(line string) {
		line = strings.TrimSpace(line)
		switch {
		case line == "":

		case line == "help":
			log.Infof(usage)

		case line == "buffer":
			log.Infof("buffer=%q", col.Buffer())

		case line == "feed":
			if err := prn.PrintLine(""); err != nil {
				log.Error(err)
			}

		case line == "log=yes":
			log.SetLevel(log2.LDebug)
		case line == "log=no":
			log.SetLevel(log2.LError)

		case strings.HasPrefix(line, "print "):
			if err := prn.PrintLine(strings.TrimPrefix(line, "print ")); err != nil {
				log.Error(err)
			}

		case strings.HasPrefix(line, "key "):
			code, err := strconv.ParseUint(strings.TrimPrefix(line, "key "), 10, 16)
			if err != nil {
				log.Errorf("key: %v", err)
				return
			}
			col.HandleEvent(types.InputEvent{
				Source: "cli",
				Type:   types.EventTypeKey,
				Code:   uint16(code),
				Value:  1,
			})

		case line[0] == 's':
			ms, err := strconv.ParseUint(line[1:], 10, 32)
			if err != nil {
				log.Errorf("sleep: %v", err)
				return
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)

		default:
			log.Errorf("unknown command '%s'", line)
		}
	}
}

func newCompleter() func(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "print ", Description: "send text to printer as one job"},
		{Text: "key ", Description: "inject key press by scan code"},
		{Text: "buffer", Description: "show collected digits"},
		{Text: "feed", Description: "advance paper"},
		{Text: "log=yes", Description: "debug logging"},
		{Text: "log=no", Description: "errors only"},
		{Text: "help", Description: "show command syntax"},
	}
	return func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
	}
}

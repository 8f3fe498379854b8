package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/keyprint/cmd/keyprint/subcmd"
	"github.com/temoto/keyprint/internal/state"
	"github.com/temoto/keyprint/log2"
)

var log = log2.NewStderr(log2.LDebug)

var modules = []subcmd.Mod{
	{Name: "daemon", Main: DaemonMain},
	{Name: "print", Main: PrintMain},
	{Name: "version", Main: versionMain},
}

var BuildVersion string = "unknown" // set by ldflags -X

func main() {
	flagset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagset.Usage = func() {
		fmt.Fprint(flagset.Output(), "Usage: keyprint [option...] command\n\nOptions:\n")
		flagset.PrintDefaults()
		commandNames := make([]string, len(modules))
		for i, m := range modules {
			commandNames[i] = m.Name
		}
		fmt.Fprintf(flagset.Output(), "Commands: %s\n", strings.Join(commandNames, " "))
	}
	configPath := flagset.String("config", "keyprint.hcl", "")
	if err := flagset.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	command := flagset.Arg(0)
	if command == "" {
		command = "daemon"
	}
	mod, err := subcmd.Parse(command, modules)
	if err != nil {
		fmt.Fprintf(flagset.Output(), "command line error: %v\n\n", err)
		flagset.Usage()
		os.Exit(1)
	}
	if mod.Name == "version" {
		_ = versionMain(context.Background(), nil, nil)
		return
	}

	if subcmd.SdNotify("start") {
		// under systemd assume journal logging, no timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}

	ctx, g := state.NewContext(log)
	g.BuildVersion = BuildVersion
	config := state.MustReadConfig(log, state.NewOsFullReader(), *configPath)
	log.Debugf("starting command=%s", mod.Name)

	if err := mod.Main(ctx, config, flagset.Args()); err != nil {
		g.Log.Errorf(errors.ErrorStack(err))
		os.Exit(1)
	}
}

func versionMain(ctx context.Context, config *state.Config, args []string) error {
	fmt.Printf("keyprint %s\n", BuildVersion)
	return nil
}

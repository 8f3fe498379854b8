package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/errors"
	"github.com/temoto/keyprint/cmd/keyprint/subcmd"
	"github.com/temoto/keyprint/hardware/input"
	"github.com/temoto/keyprint/internal/collect"
	"github.com/temoto/keyprint/internal/state"
)

// DaemonMain is the long-running mode: keypad events in, print jobs out.
func DaemonMain(ctx context.Context, config *state.Config, args []string) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)
	g.Log.Debugf("keyprint version=%s", g.BuildVersion)

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigch
		g.Log.Infof("caught signal %v", sig)
		g.Stop()
	}()

	keypad, err := g.Keypad()
	if err != nil {
		return errors.Annotate(err, "daemon keypad")
	}
	prn, err := g.Printer()
	if err != nil {
		return errors.Annotate(err, "daemon printer")
	}

	c := collect.NewCollector(g.Log, g.Keymap, prn)
	c.SetFlushFunc(g.Tele.Flush)
	g.Log.SetErrorFunc(g.Tele.Error)
	g.Hardware.Input.SubscribeFunc("collect", c.HandleEvent, g.Alive.StopChan())

	g.Log.Debugf("keyprint init complete, running")
	subcmd.SdNotify(subcmd.SdNotifyReady)

	g.Hardware.Input.Run([]input.Source{keypad})

	// stopping
	_ = keypad.Close()
	if err := prn.Close(); err != nil {
		g.Log.Errorf("printer close err=%v", err)
	}
	g.Tele.Close()
	g.Alive.Wait()
	return nil
}

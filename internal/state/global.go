package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/keyprint/hardware/input"
	"github.com/temoto/keyprint/hardware/printer"
	"github.com/temoto/keyprint/helpers"
	"github.com/temoto/keyprint/internal/keymap"
	"github.com/temoto/keyprint/internal/tele"
	"github.com/temoto/keyprint/log2"
)

// Global is the single owner of config, lifecycle and hardware handles.
// Passed through context, never as package-level state.
type Global struct {
	Alive        *alive.Alive
	BuildVersion string
	Config       *Config
	Keymap       *keymap.Keymap
	Log          *log2.Log
	Tele         *tele.Tele

	Hardware struct {
		Input   *input.Dispatch
		Keypad  *input.DevInputEventSource
		Printer *printer.Device
	}

	initKeypadOnce  sync.Once
	initKeypadErr   error
	initPrinterOnce sync.Once
	initPrinterErr  error
}

const ContextKey = "run/state-global"

func NewContext(log *log2.Log) (context.Context, *Global) {
	if log == nil {
		panic("code error NewContext log=nil")
	}
	g := &Global{
		Alive: alive.NewAlive(),
		Log:   log,
		Tele:  tele.New(),
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, log2.ContextKey, log)
	ctx = context.WithValue(ctx, ContextKey, g)
	return ctx, g
}

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg

	if g.Config.Hardware.Keypad.Device == "" {
		g.Config.Hardware.Keypad.Device = DefaultKeypadDevice
		g.Log.Debugf("config: hardware.keypad.device=empty default=%s", DefaultKeypadDevice)
	}
	if g.Config.Hardware.Printer.Device == "" {
		g.Config.Hardware.Printer.Device = DefaultPrinterDevice
		g.Log.Debugf("config: hardware.printer.device=empty default=%s", DefaultPrinterDevice)
	}

	errs := make([]error, 0)

	// tele is the remote error reporting mechanism, init before anything else
	if err := g.Tele.Init(g.Log, g.Config.Tele); err != nil {
		errs = append(errs, errors.Annotate(err, "tele init"))
	}

	km, err := keymap.New(g.Config.Keymap)
	if err != nil {
		errs = append(errs, err)
	} else {
		g.Keymap = km
	}

	g.Hardware.Input = input.NewDispatch(g.Log, g.Alive.StopChan())

	return helpers.FoldErrors(errs)
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	if err := g.Init(ctx, cfg); err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

// Keypad opens the input device once; failure is remembered.
func (g *Global) Keypad() (*input.DevInputEventSource, error) {
	g.initKeypadOnce.Do(func() {
		g.Hardware.Keypad, g.initKeypadErr = input.NewDevInputEventSource(g.Log, g.Config.Hardware.Keypad.Device)
	})
	return g.Hardware.Keypad, g.initKeypadErr
}

// Printer opens the output device once; failure is remembered.
func (g *Global) Printer() (*printer.Device, error) {
	g.initPrinterOnce.Do(func() {
		g.Hardware.Printer, g.initPrinterErr = printer.NewDevice(g.Log, g.Config.Hardware.Printer.Device)
	})
	return g.Hardware.Printer, g.initPrinterErr
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Errorf(errors.ErrorStack(err))
		g.Tele.Error(err)
	}
}

// Stop asks the daemon loop to exit; hardware close happens in the run mode.
func (g *Global) Stop() {
	g.Alive.Stop()
}

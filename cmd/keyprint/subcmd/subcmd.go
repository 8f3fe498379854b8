// Support sub-commands in keyprint application.
// It's simple but fine so far.
package subcmd

import (
	"context"
	"fmt"
	"log"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/keyprint/internal/state"
)

const SdNotifyReady = daemon.SdNotifyReady

type Mod struct {
	Name string
	Main func(ctx context.Context, config *state.Config, args []string) error
}

func Parse(command string, modules []Mod) (*Mod, error) {
	if command == "" {
		return nil, fmt.Errorf("empty command")
	}

	var found *Mod
	for i := range modules {
		m := &modules[i]
		if m.Name == "" {
			panic(fmt.Sprintf("code error Name='' module=%#v", m))
		}
		if command == m.Name {
			found = m
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("unknown command='%s'", command)
	}
	return found, nil
}

func SdNotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}

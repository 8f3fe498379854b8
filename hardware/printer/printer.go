// Line printer over a write-only character device, e.g. /dev/usb/lp0.
// The wire format is plain bytes: job text, then one line terminator and two
// blank lines to advance paper between jobs. No printer control codes.
package printer

import (
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/keyprint/log2"
)

// job text suffix: line terminator + two blank lines
const jobSuffix = "\n\n\n"

type Device struct {
	f   io.WriteCloser
	log *log2.Log
	tag string
}

// NewDevice opens the printer for raw writes. Open failure is fatal for the
// caller at startup, the daemon does not run without a printer.
func NewDevice(log *log2.Log, device string) (*Device, error) {
	f, err := os.OpenFile(device, os.O_WRONLY, 0)
	if err != nil {
		return nil, errors.Annotatef(err, "printer open device=%s", device)
	}
	return &Device{f: f, log: log, tag: device}, nil
}

// PrintLine writes text+jobSuffix in a single write call. Partial write is an
// error; there is no chunking and no retry, the transport either takes the
// whole job or the job is lost.
func (d *Device) PrintLine(text string) error {
	b := make([]byte, 0, len(text)+len(jobSuffix))
	b = append(b, text...)
	b = append(b, jobSuffix...)
	n, err := d.f.Write(b)
	if err != nil {
		return errors.Annotatef(err, "printer write device=%s", d.tag)
	}
	if n != len(b) {
		return errors.Errorf("printer partial write device=%s n=%d expected=%d", d.tag, n, len(b))
	}
	d.log.Debugf("printer wrote %d bytes", n)
	return nil
}

func (d *Device) Close() error { return d.f.Close() }

package actuator

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Port is the write side of a serial connection. Tests substitute an
// in-memory implementation.
type Port interface {
	io.Writer
	io.Closer
}

// OpenSerial opens the serial device at path with opts.
func OpenSerial(path string, opts PortOptions) (Port, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}
	return port, nil
}

package netutil

import (
	"net"

	"github.com/pkg/errors"
)

// GetAvailablePortForAddress returns a port that is free to listen on at the
// provided address. The port is released before returning, so a concurrent
// process may still claim it.
func GetAvailablePortForAddress(address string) (int, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(address, "0"))
	if err != nil {
		return 0, errors.Wrapf(err, "failed to listen on %s", address)
	}
	defer l.Close()

	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, errors.Errorf("unexpected listener address type %T", l.Addr())
	}

	return addr.Port, nil
}

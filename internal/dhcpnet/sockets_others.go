//go:build !linux

package dhcpnet

import (
	"net"

	"github.com/AdguardTeam/golibs/errors"
)

// unixSockets is the [SocketOps] that is only implemented on Linux, since
// SO_BINDTODEVICE is Linux-specific.  All methods return
// [errors.ErrUnsupported].
type unixSockets struct{}

// type check
var _ SocketOps = unixSockets{}

// Socket implements the [SocketOps] interface for unixSockets.
func (unixSockets) Socket() (fd int, err error) { return -1, errors.ErrUnsupported }

// SetReuseAddr implements the [SocketOps] interface for unixSockets.
func (unixSockets) SetReuseAddr(_ int) (err error) { return errors.ErrUnsupported }

// SetBroadcast implements the [SocketOps] interface for unixSockets.
func (unixSockets) SetBroadcast(_ int) (err error) { return errors.ErrUnsupported }

// BindToDevice implements the [SocketOps] interface for unixSockets.
func (unixSockets) BindToDevice(_ int, _ string) (err error) { return errors.ErrUnsupported }

// Bind implements the [SocketOps] interface for unixSockets.
func (unixSockets) Bind(_ int, _ uint16) (err error) { return errors.ErrUnsupported }

// Close implements the [SocketOps] interface for unixSockets.
func (unixSockets) Close(_ int) (err error) { return errors.ErrUnsupported }

// FileConn implements the [SocketOps] interface for unixSockets.
func (unixSockets) FileConn(_ int, _ string) (conn *net.UDPConn, err error) {
	return nil, errors.ErrUnsupported
}

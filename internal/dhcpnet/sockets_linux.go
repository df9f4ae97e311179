//go:build linux

package dhcpnet

import (
	"fmt"
	"net"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"golang.org/x/sys/unix"
)

// unixSockets is the [SocketOps] implemented with the Linux socket API.
type unixSockets struct{}

// type check
var _ SocketOps = unixSockets{}

// Socket implements the [SocketOps] interface for unixSockets.
func (unixSockets) Socket() (fd int, err error) {
	fd, err = unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, unix.IPPROTO_UDP)

	return fd, os.NewSyscallError("socket", err)
}

// SetReuseAddr implements the [SocketOps] interface for unixSockets.
func (unixSockets) SetReuseAddr(fd int) (err error) {
	err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)

	return os.NewSyscallError("setsockopt SO_REUSEADDR", err)
}

// SetBroadcast implements the [SocketOps] interface for unixSockets.
func (unixSockets) SetBroadcast(fd int) (err error) {
	err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, 1)

	return os.NewSyscallError("setsockopt SO_BROADCAST", err)
}

// BindToDevice implements the [SocketOps] interface for unixSockets.
func (unixSockets) BindToDevice(fd int, ifaceName string) (err error) {
	err = unix.BindToDevice(fd, ifaceName)

	return os.NewSyscallError("setsockopt SO_BINDTODEVICE", err)
}

// Bind implements the [SocketOps] interface for unixSockets.
func (unixSockets) Bind(fd int, port uint16) (err error) {
	// The zero address is INADDR_ANY.
	err = unix.Bind(fd, &unix.SockaddrInet4{Port: int(port)})

	return os.NewSyscallError("bind", err)
}

// Close implements the [SocketOps] interface for unixSockets.
func (unixSockets) Close(fd int) (err error) {
	return os.NewSyscallError("close", unix.Close(fd))
}

// FileConn implements the [SocketOps] interface for unixSockets.
func (unixSockets) FileConn(fd int, name string) (conn *net.UDPConn, err error) {
	f := os.NewFile(uintptr(fd), name)

	// net.FilePacketConn duplicates the descriptor, so the file is closed in
	// any case.
	defer func() { err = errors.WithDeferred(err, f.Close()) }()

	c, err := net.FilePacketConn(f)
	if err != nil {
		return nil, err
	}

	conn, ok := c.(*net.UDPConn)
	if !ok {
		return nil, errors.WithDeferred(fmt.Errorf("unexpected conn type %T", c), c.Close())
	}

	return conn, nil
}

package dhcpnet

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/osutil"
)

// SocketOps is the socket facility the provisioner configures the sockets
// with.  fd is a socket descriptor returned by Socket.
type SocketOps interface {
	// Socket creates a new UDP over IPv4 socket.
	Socket() (fd int, err error)

	// SetReuseAddr enables SO_REUSEADDR on fd.
	SetReuseAddr(fd int) (err error)

	// SetBroadcast enables SO_BROADCAST on fd.
	SetBroadcast(fd int) (err error)

	// BindToDevice restricts fd to the interface named ifaceName.
	BindToDevice(fd int, ifaceName string) (err error)

	// Bind binds fd to the wildcard IPv4 address and port.
	Bind(fd int, port uint16) (err error)

	// Close closes fd.
	Close(fd int) (err error)

	// FileConn wraps fd into a connection.  It takes the ownership of fd, so
	// fd must not be used after the call regardless of the result.
	FileConn(fd int, name string) (conn *net.UDPConn, err error)
}

// ProvisionerConfig is the configuration for a [Provisioner].
type ProvisionerConfig struct {
	// Logger is used to log the socket configuration.  If nil,
	// [slog.Default] is used.
	Logger *slog.Logger

	// Sockets is the socket facility.  If nil, the platform's implementation
	// is used.
	Sockets SocketOps

	// Metrics collects the provisioning results.  If nil, [EmptyMetrics] is
	// used.
	Metrics Metrics
}

// Provisioner creates sockets for DHCP traffic.  It's safe for concurrent use.
type Provisioner struct {
	logger  *slog.Logger
	sockets SocketOps
	metrics Metrics

	// exit terminates the process in MustListen.  It's replaced in tests.
	exit func(code int)
}

// NewProvisioner returns a properly initialized *Provisioner.  conf may be nil.
func NewProvisioner(conf *ProvisionerConfig) (p *Provisioner) {
	if conf == nil {
		conf = &ProvisionerConfig{}
	}

	p = &Provisioner{
		logger:  conf.Logger,
		sockets: conf.Sockets,
		metrics: conf.Metrics,
		exit:    os.Exit,
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	if p.sockets == nil {
		p.sockets = unixSockets{}
	}

	if p.metrics == nil {
		p.metrics = EmptyMetrics{}
	}

	return p
}

// Listen returns a UDP socket bound to the wildcard address on port and
// restricted to the interface named ifaceName.  The socket has broadcast and
// address reuse enabled.  The caller owns conn and must close it.  If err is
// not nil, no socket is left open.
//
// The restriction is done on the device level, so that identical sockets may
// coexist on different interfaces with the same port.  It doesn't work
// correctly for alias interfaces like "eth0:1", see busybox bug 1032.
//
// Errors matching [IsFatal] mean that the socket facility itself is unusable
// for DHCP, and the DHCP engine is expected to treat them as fatal.  See
// [Provisioner.MustListen].
func (p *Provisioner) Listen(
	ctx context.Context,
	port uint16,
	ifaceName string,
) (conn *net.UDPConn, err error) {
	defer func() { p.metrics.ObserveListen(ctx, err) }()

	if err = validateIfaceName(ifaceName); err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "opening listen socket", "port", port, "iface", ifaceName)

	fd, err := p.sockets.Socket()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceExhausted, err)
	}

	err = p.configure(ctx, fd, port, ifaceName)
	if err != nil {
		return nil, errors.WithDeferred(err, p.sockets.Close(fd))
	}

	name := fmt.Sprintf("udp4:*:%d%%%s", port, ifaceName)
	conn, err = p.sockets.FileConn(fd, name)
	if err != nil {
		return nil, fmt.Errorf("wrapping socket: %w", err)
	}

	return conn, nil
}

// configure sets the options of fd and binds it.
func (p *Provisioner) configure(
	ctx context.Context,
	fd int,
	port uint16,
	ifaceName string,
) (err error) {
	err = p.sockets.SetReuseAddr(fd)
	if err != nil {
		// The socket is still usable, only the rebinding after restart may
		// be delayed.
		p.logger.WarnContext(ctx, "enabling address reuse", slogutil.KeyError, err)
	}

	err = p.sockets.SetBroadcast(fd)
	if err != nil {
		return fmt.Errorf("enabling broadcast: %w: %w", ErrSocketConfig, err)
	}

	err = p.sockets.BindToDevice(fd, ifaceName)
	if err != nil {
		return fmt.Errorf("binding to device %s: %w: %w", ifaceName, ErrSocketConfig, err)
	}

	err = p.sockets.Bind(fd, port)
	if err != nil {
		return fmt.Errorf("binding to port %d: %w: %w", port, ErrBind, err)
	}

	return nil
}

// MustListen is like [Provisioner.Listen], but terminates the process if the
// error matches [IsFatal].  This is the default behavior of the DHCP engine.
// Only the recoverable errors, such as the ones wrapping [ErrBind], are
// returned.
func (p *Provisioner) MustListen(
	ctx context.Context,
	port uint16,
	ifaceName string,
) (conn *net.UDPConn, err error) {
	conn, err = p.Listen(ctx, port, ifaceName)
	if IsFatal(err) {
		p.logger.ErrorContext(ctx, "listen socket", "iface", ifaceName, slogutil.KeyError, err)
		p.exit(osutil.ExitCodeFailure)
	}

	return conn, err
}

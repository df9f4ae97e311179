package dhcpnet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/netip"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
)

// InterfaceController queries the kernel for the interface properties.  It's
// a transient handle, the resolver opens one per call.
type InterfaceController interface {
	// Address returns the IPv4 address of the interface named name.
	Address(name string) (addr netip.Addr, err error)

	// Index returns the kernel index of the interface named name.
	Index(name string) (idx int, err error)

	// HardwareAddr returns the link-layer address of the interface named
	// name.  hwAddr may be longer than an Ethernet address, in which case
	// only the first 6 bytes are used.
	HardwareAddr(name string) (hwAddr net.HardwareAddr, err error)

	// No methods should be called after Close.
	io.Closer
}

// ControllerOpener opens interface controllers.
type ControllerOpener interface {
	// Open returns a new controller.  The caller must close it.
	Open() (c InterfaceController, err error)
}

// ResolverConfig is the configuration for a [Resolver].
type ResolverConfig struct {
	// Logger is used to log the queries.  If nil, [slog.Default] is used.
	Logger *slog.Logger

	// Opener opens the control handles.  If nil, the platform's ioctl
	// implementation is used.
	Opener ControllerOpener

	// Metrics collects the resolve results.  If nil, [EmptyMetrics] is used.
	Metrics Metrics
}

// Resolver resolves network interfaces to their identities.  It's safe for
// concurrent use.
type Resolver struct {
	logger  *slog.Logger
	opener  ControllerOpener
	metrics Metrics
}

// NewResolver returns a properly initialized *Resolver.  conf may be nil.
func NewResolver(conf *ResolverConfig) (r *Resolver) {
	if conf == nil {
		conf = &ResolverConfig{}
	}

	r = &Resolver{
		logger:  conf.Logger,
		opener:  conf.Opener,
		metrics: conf.Metrics,
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	if r.opener == nil {
		r.opener = ioctlOpener{}
	}

	if r.metrics == nil {
		r.metrics = EmptyMetrics{}
	}

	return r
}

// Resolve returns the parts of the identity of the interface named ifaceName
// described by req.  The queries are performed in the order of the address,
// the index, and the hardware address.  If any of them fails, id is nil.
func (r *Resolver) Resolve(
	ctx context.Context,
	ifaceName string,
	req Request,
) (id *Identity, err error) {
	defer func() { r.metrics.ObserveResolve(ctx, err) }()

	if err = validateIfaceName(ifaceName); err != nil {
		return nil, err
	}

	c, err := r.opener.Open()
	if err != nil {
		return nil, fmt.Errorf("opening control handle: %w: %w", ErrResourceExhausted, err)
	}
	defer func() {
		err = errors.WithDeferred(err, c.Close())
		if err != nil {
			id = nil
		}
	}()

	return r.query(ctx, c, ifaceName, req)
}

// query performs the requested queries using c.
func (r *Resolver) query(
	ctx context.Context,
	c InterfaceController,
	name string,
	req Request,
) (id *Identity, err error) {
	id = &Identity{}

	if req.Address {
		id.Address, err = c.Address(name)
		if err != nil {
			return nil, fmt.Errorf(
				"getting address of %s, is it up and configured?: %w: %w",
				name,
				ErrInterfaceUnavailable,
				err,
			)
		}

		r.logger.DebugContext(ctx, "got address", "iface", name, "addr", id.Address)
	}

	if req.Index {
		id.Index, err = c.Index(name)
		if err != nil {
			r.logger.WarnContext(ctx, "getting index", "iface", name, slogutil.KeyError, err)

			return nil, fmt.Errorf("getting index of %s: %w: %w", name, ErrInterfaceQuery, err)
		}

		id.HasIndex = true
		r.logger.DebugContext(ctx, "got index", "iface", name, "idx", id.Index)
	}

	if req.HardwareAddr {
		id.HardwareAddr, err = r.hardwareAddr(ctx, c, name)
		if err != nil {
			return nil, err
		}
	}

	return id, nil
}

// hardwareAddr returns the first 6 bytes of the link-layer address of the
// interface.
func (r *Resolver) hardwareAddr(
	ctx context.Context,
	c InterfaceController,
	name string,
) (hwAddr net.HardwareAddr, err error) {
	full, err := c.HardwareAddr(name)
	if err == nil && len(full) < hwAddrLen {
		err = fmt.Errorf("hardware address %s: %w", full, errors.ErrOutOfRange)
	}

	if err != nil {
		r.logger.WarnContext(ctx, "getting hardware address", "iface", name, slogutil.KeyError, err)

		return nil, fmt.Errorf(
			"getting hardware address of %s: %w: %w",
			name,
			ErrInterfaceQuery,
			err,
		)
	}

	hwAddr = make(net.HardwareAddr, hwAddrLen)
	copy(hwAddr, full)

	r.logger.DebugContext(ctx, "got hardware address", "iface", name, "hwaddr", hwAddr)

	return hwAddr, nil
}

// Package dhcpnet binds DHCP to network interfaces.  It resolves interfaces to
// their identities and provisions the UDP sockets the DHCP protocol engine
// listens on.
//
// Neither [Resolver] nor [Provisioner] keeps any state between calls.  Each
// call acquires its own kernel resources and releases them before returning,
// except for the socket returned by [Provisioner.Listen], which is owned by the
// caller.
package dhcpnet

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
)

const (
	// ErrBadInterfaceName is returned when the interface name is empty or
	// doesn't fit into the kernel's interface name buffer.
	ErrBadInterfaceName errors.Error = "bad interface name"

	// ErrInterfaceUnavailable is returned when the address of the interface
	// can't be queried, which usually means that the interface is absent, down,
	// or has no IPv4 address configured.  The caller may retry later.
	ErrInterfaceUnavailable errors.Error = "interface unavailable"

	// ErrInterfaceQuery is returned when the index or the hardware address of
	// the interface can't be queried.
	ErrInterfaceQuery errors.Error = "interface query failed"

	// ErrResourceExhausted is returned when the control handle or the socket
	// can't be created.
	ErrResourceExhausted errors.Error = "cannot create socket"

	// ErrSocketConfig is returned when the broadcast or the device restriction
	// can't be enabled on the socket.
	ErrSocketConfig errors.Error = "cannot configure socket"

	// ErrBind is returned when the socket can't be bound to the port.  The
	// caller may retry later, since the port may be held by another process.
	ErrBind errors.Error = "cannot bind socket"
)

// IsFatal returns true if err belongs to a class of errors that the DHCP engine
// has no recovery path for.  Those are [ErrResourceExhausted] and
// [ErrSocketConfig].  [Provisioner.MustListen] terminates the process on them.
func IsFatal(err error) (ok bool) {
	return errors.Is(err, ErrResourceExhausted) || errors.Is(err, ErrSocketConfig)
}

// ifaceNameSize is the size of the kernel's interface name buffer, including
// the terminating NUL byte.  It's IFNAMSIZ on both Linux and BSDs.
const ifaceNameSize = 16

// badIfaceNameChars are the bytes the kernel doesn't accept in interface
// names.  NUL also terminates the name early.
const badIfaceNameChars = "\x00/ \t\n\v\f\r"

// validateIfaceName returns an error if name can't be passed to the kernel as
// is.  Names that don't fit or contain bytes from [badIfaceNameChars] are
// rejected instead of truncated, since a truncated name may refer to a
// different interface.  Alias names like "eth0:1" are valid.
func validateIfaceName(name string) (err error) {
	l := len(name)
	switch {
	case l == 0:
		return fmt.Errorf("%w: %w", ErrBadInterfaceName, errors.ErrEmptyValue)
	case l >= ifaceNameSize:
		return fmt.Errorf(
			"%w: %q is %d bytes long, max %d",
			ErrBadInterfaceName,
			name,
			l,
			ifaceNameSize-1,
		)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q is reserved", ErrBadInterfaceName, name)
	}

	if i := strings.IndexAny(name, badIfaceNameChars); i >= 0 {
		return fmt.Errorf(
			"%w: %q: bad character %q at index %d",
			ErrBadInterfaceName,
			name,
			name[i],
			i,
		)
	}

	return nil
}

// Request describes the parts of the interface identity to resolve.  Parts
// that aren't requested are never queried.
type Request struct {
	// Address, if true, requests the IPv4 address of the interface.
	Address bool

	// Index, if true, requests the kernel index of the interface.
	Index bool

	// HardwareAddr, if true, requests the link-layer address of the interface.
	HardwareAddr bool
}

// Identity is a snapshot of the interface identity.  Only the requested fields
// are set.
type Identity struct {
	// Address is the IPv4 address of the interface.  It's the zero value if
	// not requested.
	Address netip.Addr

	// HardwareAddr is the link-layer address of the interface.  It's exactly
	// 6 bytes long if requested and nil otherwise.
	HardwareAddr net.HardwareAddr

	// Index is the kernel index of the interface.  It's only meaningful if
	// HasIndex is true.
	Index int

	// HasIndex is true if Index is set.
	HasIndex bool
}

// hwAddrLen is the length of the Ethernet hardware address.
const hwAddrLen = 6

// Metrics is an interface for collection of the binding layer statistics.
type Metrics interface {
	// ObserveResolve records the result of a single resolve.  err is nil on
	// success.
	ObserveResolve(ctx context.Context, err error)

	// ObserveListen records the result of a single socket provisioning.  err
	// is nil on success.
	ObserveListen(ctx context.Context, err error)
}

// EmptyMetrics is the implementation of the [Metrics] interface that does
// nothing.
type EmptyMetrics struct{}

// type check
var _ Metrics = EmptyMetrics{}

// ObserveResolve implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) ObserveResolve(_ context.Context, _ error) {}

// ObserveListen implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) ObserveListen(_ context.Context, _ error) {}

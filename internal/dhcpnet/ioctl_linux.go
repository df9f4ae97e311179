//go:build linux

package dhcpnet

import (
	"fmt"
	"net"
	"net/netip"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctlOpener is the [ControllerOpener] that opens [ioctlController]s.
type ioctlOpener struct{}

// type check
var _ ControllerOpener = ioctlOpener{}

// Open implements the [ControllerOpener] interface for ioctlOpener.
func (ioctlOpener) Open() (c InterfaceController, err error) {
	// A datagram socket is enough for the SIOCGIF* requests and, unlike a raw
	// one, doesn't require CAP_NET_RAW.
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}

	return &ioctlController{fd: fd}, nil
}

// ioctlController is the [InterfaceController] that performs the SIOCGIF*
// ioctl requests on a control socket.
type ioctlController struct {
	fd int
}

// type check
var _ InterfaceController = (*ioctlController)(nil)

// Address implements the [InterfaceController] interface for *ioctlController.
func (c *ioctlController) Address(name string) (addr netip.Addr, err error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("creating ifreq: %w", err)
	}

	err = unix.IoctlIfreq(c.fd, unix.SIOCGIFADDR, ifr)
	if err != nil {
		return netip.Addr{}, os.NewSyscallError("ioctl SIOCGIFADDR", err)
	}

	ip, err := ifr.Inet4Addr()
	if err != nil {
		return netip.Addr{}, fmt.Errorf("decoding address: %w", err)
	}

	return netip.AddrFrom4([4]byte(ip)), nil
}

// Index implements the [InterfaceController] interface for *ioctlController.
func (c *ioctlController) Index(name string) (idx int, err error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return 0, fmt.Errorf("creating ifreq: %w", err)
	}

	err = unix.IoctlIfreq(c.fd, unix.SIOCGIFINDEX, ifr)
	if err != nil {
		return 0, os.NewSyscallError("ioctl SIOCGIFINDEX", err)
	}

	// ifr_ifindex is a C int.
	return int(int32(ifr.Uint32())), nil
}

// ifreqHWAddr is struct ifreq with the ifr_hwaddr member of the union.
// [unix.Ifreq] has no accessor for a generic sockaddr, so the request is made
// directly.
type ifreqHWAddr struct {
	name   [unix.IFNAMSIZ]byte
	family uint16
	data   [14]byte

	// Pad to the size of the ifr_map member, the largest one of the union.
	_ [8]byte
}

// HardwareAddr implements the [InterfaceController] interface for
// *ioctlController.
func (c *ioctlController) HardwareAddr(name string) (hwAddr net.HardwareAddr, err error) {
	if len(name) >= unix.IFNAMSIZ {
		return nil, unix.EINVAL
	}

	req := &ifreqHWAddr{}
	copy(req.name[:], name)

	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(c.fd),
		uintptr(unix.SIOCGIFHWADDR),
		uintptr(unsafe.Pointer(req)),
	)
	if errno != 0 {
		return nil, os.NewSyscallError("ioctl SIOCGIFHWADDR", errno)
	}

	hwAddr = make(net.HardwareAddr, hwAddrLen)
	copy(hwAddr, req.data[:])

	return hwAddr, nil
}

// Close implements the [InterfaceController] interface for *ioctlController.
func (c *ioctlController) Close() (err error) {
	return os.NewSyscallError("close", unix.Close(c.fd))
}

package aghtest

import (
	"context"
	"net"
	"net/netip"

	"github.com/AdguardTeam/dhcpnet/internal/dhcpnet"
)

// Interface Mocks
//
// Keep entities in this file in alphabetic order.

// Package dhcpnet

// ControllerOpener is a fake [dhcpnet.ControllerOpener] implementation for
// tests.
type ControllerOpener struct {
	OnOpen func() (c dhcpnet.InterfaceController, err error)
}

// type check
var _ dhcpnet.ControllerOpener = (*ControllerOpener)(nil)

// Open implements the [dhcpnet.ControllerOpener] interface for
// *ControllerOpener.
func (o *ControllerOpener) Open() (c dhcpnet.InterfaceController, err error) {
	return o.OnOpen()
}

// InterfaceController is a fake [dhcpnet.InterfaceController] implementation
// for tests.
type InterfaceController struct {
	OnAddress      func(name string) (addr netip.Addr, err error)
	OnIndex        func(name string) (idx int, err error)
	OnHardwareAddr func(name string) (hwAddr net.HardwareAddr, err error)
	OnClose        func() (err error)
}

// type check
var _ dhcpnet.InterfaceController = (*InterfaceController)(nil)

// Address implements the [dhcpnet.InterfaceController] interface for
// *InterfaceController.
func (c *InterfaceController) Address(name string) (addr netip.Addr, err error) {
	return c.OnAddress(name)
}

// Index implements the [dhcpnet.InterfaceController] interface for
// *InterfaceController.
func (c *InterfaceController) Index(name string) (idx int, err error) {
	return c.OnIndex(name)
}

// HardwareAddr implements the [dhcpnet.InterfaceController] interface for
// *InterfaceController.
func (c *InterfaceController) HardwareAddr(name string) (hwAddr net.HardwareAddr, err error) {
	return c.OnHardwareAddr(name)
}

// Close implements the [dhcpnet.InterfaceController] interface for
// *InterfaceController.
func (c *InterfaceController) Close() (err error) {
	return c.OnClose()
}

// Metrics is a fake [dhcpnet.Metrics] implementation for tests.
type Metrics struct {
	OnObserveResolve func(ctx context.Context, err error)
	OnObserveListen  func(ctx context.Context, err error)
}

// type check
var _ dhcpnet.Metrics = (*Metrics)(nil)

// ObserveResolve implements the [dhcpnet.Metrics] interface for *Metrics.
func (m *Metrics) ObserveResolve(ctx context.Context, err error) {
	m.OnObserveResolve(ctx, err)
}

// ObserveListen implements the [dhcpnet.Metrics] interface for *Metrics.
func (m *Metrics) ObserveListen(ctx context.Context, err error) {
	m.OnObserveListen(ctx, err)
}

// SocketOps is a fake [dhcpnet.SocketOps] implementation for tests.
type SocketOps struct {
	OnSocket       func() (fd int, err error)
	OnSetReuseAddr func(fd int) (err error)
	OnSetBroadcast func(fd int) (err error)
	OnBindToDevice func(fd int, ifaceName string) (err error)
	OnBind         func(fd int, port uint16) (err error)
	OnClose        func(fd int) (err error)
	OnFileConn     func(fd int, name string) (conn *net.UDPConn, err error)
}

// type check
var _ dhcpnet.SocketOps = (*SocketOps)(nil)

// Socket implements the [dhcpnet.SocketOps] interface for *SocketOps.
func (s *SocketOps) Socket() (fd int, err error) {
	return s.OnSocket()
}

// SetReuseAddr implements the [dhcpnet.SocketOps] interface for *SocketOps.
func (s *SocketOps) SetReuseAddr(fd int) (err error) {
	return s.OnSetReuseAddr(fd)
}

// SetBroadcast implements the [dhcpnet.SocketOps] interface for *SocketOps.
func (s *SocketOps) SetBroadcast(fd int) (err error) {
	return s.OnSetBroadcast(fd)
}

// BindToDevice implements the [dhcpnet.SocketOps] interface for *SocketOps.
func (s *SocketOps) BindToDevice(fd int, ifaceName string) (err error) {
	return s.OnBindToDevice(fd, ifaceName)
}

// Bind implements the [dhcpnet.SocketOps] interface for *SocketOps.
func (s *SocketOps) Bind(fd int, port uint16) (err error) {
	return s.OnBind(fd, port)
}

// Close implements the [dhcpnet.SocketOps] interface for *SocketOps.
func (s *SocketOps) Close(fd int) (err error) {
	return s.OnClose(fd)
}

// FileConn implements the [dhcpnet.SocketOps] interface for *SocketOps.
func (s *SocketOps) FileConn(fd int, name string) (conn *net.UDPConn, err error) {
	return s.OnFileConn(fd, name)
}

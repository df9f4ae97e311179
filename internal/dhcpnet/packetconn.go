package dhcpnet

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
)

// NewControlPacketConn wraps conn, usually returned by [Provisioner.Listen],
// into a packet connection that reports the index of the interface each
// packet arrived on along with its destination address.  conn must not be
// nil.
func NewControlPacketConn(conn *net.UDPConn) (pc *ipv4.PacketConn, err error) {
	pc = ipv4.NewPacketConn(conn)

	err = pc.SetControlMessage(ipv4.FlagInterface|ipv4.FlagDst, true)
	if err != nil {
		return nil, fmt.Errorf("enabling control messages: %w", err)
	}

	return pc, nil
}

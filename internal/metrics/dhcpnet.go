// Package metrics contains the Prometheus implementations of the metrics
// interfaces.
package metrics

import (
	"context"
	"fmt"

	"github.com/AdguardTeam/dhcpnet/internal/dhcpnet"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK                   = "ok"
	ResultBadInterfaceName     = "bad_interface_name"
	ResultInterfaceUnavailable = "interface_unavailable"
	ResultInterfaceQuery       = "interface_query"
	ResultResourceExhausted    = "resource_exhausted"
	ResultSocketConfig         = "socket_config"
	ResultBind                 = "bind"
	ResultUnknown              = "unknown"
)

// subsystemDHCPNet is the metrics subsystem of the interface binding layer.
const subsystemDHCPNet = "dhcpnet"

// DHCPNet is the Prometheus-based implementation of the [dhcpnet.Metrics]
// interface.
type DHCPNet struct {
	resolves *prometheus.CounterVec
	listens  *prometheus.CounterVec
}

// type check
var _ dhcpnet.Metrics = (*DHCPNet)(nil)

// NewDHCPNet registers the interface binding metrics in reg and returns a
// properly initialized *DHCPNet.  reg must not be nil.
func NewDHCPNet(namespace string, reg prometheus.Registerer) (m *DHCPNet, err error) {
	const (
		resolvesTotal = "resolves_total"
		listensTotal  = "listens_total"
	)

	m = &DHCPNet{
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:      resolvesTotal,
			Namespace: namespace,
			Subsystem: subsystemDHCPNet,
			Help:      "Total number of interface identity resolves by result.",
		}, []string{"result"}),
		listens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:      listensTotal,
			Namespace: namespace,
			Subsystem: subsystemDHCPNet,
			Help:      "Total number of DHCP listen sockets provisioned by result.",
		}, []string{"result"}),
	}

	var errs []error
	collectors := []struct {
		c    prometheus.Collector
		name string
	}{{
		c:    m.resolves,
		name: resolvesTotal,
	}, {
		c:    m.listens,
		name: listensTotal,
	}}

	for _, c := range collectors {
		err = reg.Register(c.c)
		if err != nil {
			errs = append(errs, fmt.Errorf("registering metrics %q: %w", c.name, err))
		}
	}

	if err = errors.Join(errs...); err != nil {
		return nil, err
	}

	return m, nil
}

// ObserveResolve implements the [dhcpnet.Metrics] interface for *DHCPNet.
func (m *DHCPNet) ObserveResolve(_ context.Context, err error) {
	m.resolves.WithLabelValues(resultLabel(err)).Inc()
}

// ObserveListen implements the [dhcpnet.Metrics] interface for *DHCPNet.
func (m *DHCPNet) ObserveListen(_ context.Context, err error) {
	m.listens.WithLabelValues(resultLabel(err)).Inc()
}

// resultLabel returns the result label value for err.
func resultLabel(err error) (res string) {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, dhcpnet.ErrBadInterfaceName):
		return ResultBadInterfaceName
	case errors.Is(err, dhcpnet.ErrInterfaceUnavailable):
		return ResultInterfaceUnavailable
	case errors.Is(err, dhcpnet.ErrInterfaceQuery):
		return ResultInterfaceQuery
	case errors.Is(err, dhcpnet.ErrResourceExhausted):
		return ResultResourceExhausted
	case errors.Is(err, dhcpnet.ErrSocketConfig):
		return ResultSocketConfig
	case errors.Is(err, dhcpnet.ErrBind):
		return ResultBind
	default:
		return ResultUnknown
	}
}

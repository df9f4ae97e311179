package dhcpnet

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/stretchr/testify/assert"
)

// failingSockets is a [SocketOps] that fails at the step named by failAt.
type failingSockets struct {
	failAt string
}

// type check
var _ SocketOps = failingSockets{}

// errTestSockets is returned by failingSockets.
const errTestSockets errors.Error = "test sockets error"

// result returns errTestSockets if step is the failing one.
func (s failingSockets) result(step string) (err error) {
	if s.failAt == step {
		return errTestSockets
	}

	return nil
}

func (s failingSockets) Socket() (fd int, err error) { return 3, s.result("socket") }

func (s failingSockets) SetReuseAddr(_ int) (err error) { return s.result("reuseaddr") }

func (s failingSockets) SetBroadcast(_ int) (err error) { return s.result("broadcast") }

func (s failingSockets) BindToDevice(_ int, _ string) (err error) {
	return s.result("bindtodevice")
}

func (s failingSockets) Bind(_ int, _ uint16) (err error) { return s.result("bind") }

func (s failingSockets) Close(_ int) (err error) { return nil }

func (s failingSockets) FileConn(_ int, _ string) (conn *net.UDPConn, err error) {
	return &net.UDPConn{}, nil
}

func TestProvisioner_MustListen(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		failAt   string
		wantExit bool
		wantConn bool
	}{{
		name:     "success",
		failAt:   "",
		wantExit: false,
		wantConn: true,
	}, {
		name:     "socket",
		failAt:   "socket",
		wantExit: true,
		wantConn: false,
	}, {
		name:     "broadcast",
		failAt:   "broadcast",
		wantExit: true,
		wantConn: false,
	}, {
		name:     "bindtodevice",
		failAt:   "bindtodevice",
		wantExit: true,
		wantConn: false,
	}, {
		name:     "bind",
		failAt:   "bind",
		wantExit: false,
		wantConn: false,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := NewProvisioner(&ProvisionerConfig{
				Logger:  slogutil.NewDiscardLogger(),
				Sockets: failingSockets{failAt: tc.failAt},
			})

			var exitCode int
			exited := false
			p.exit = func(code int) {
				exited = true
				exitCode = code
			}

			ctx := testutil.ContextWithTimeout(t, time.Second)
			conn, err := p.MustListen(ctx, 67, "eth0")
			assert.Equal(t, tc.wantExit, exited)
			assert.Equal(t, tc.wantConn, conn != nil)

			if tc.wantExit {
				assert.Equal(t, osutil.ExitCodeFailure, exitCode)
			}

			if tc.failAt == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errTestSockets)
			}
		})
	}
}

func TestNewProvisioner_defaults(t *testing.T) {
	t.Parallel()

	p := NewProvisioner(nil)
	assert.NotNil(t, p.logger)
	assert.Equal(t, EmptyMetrics{}, p.metrics)
	assert.Equal(t, unixSockets{}, p.sockets)

	r := NewResolver(nil)
	assert.NotNil(t, r.logger)
	assert.Equal(t, EmptyMetrics{}, r.metrics)
	assert.Equal(t, ioctlOpener{}, r.opener)

	// Make sure that the default metrics don't panic.
	EmptyMetrics{}.ObserveListen(context.Background(), nil)
}

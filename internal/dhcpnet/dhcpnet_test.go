package dhcpnet_test

import (
	"strings"
	"testing"
	"time"

	"github.com/AdguardTeam/dhcpnet/internal/dhcpnet"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/stretchr/testify/assert"
)

// testTimeout is the common timeout for tests.
const testTimeout = 1 * time.Second

// testIfaceName is the name of the network interface for tests that don't
// touch the kernel.
const testIfaceName = "eth0"

// testError is the common error for tests.
const testError errors.Error = "test error"

// Interface names of various lengths.
var (
	// maxLenIfaceName is the longest name the kernel accepts.
	maxLenIfaceName = strings.Repeat("a", 15)

	// tooLongIfaceName is one byte longer than [maxLenIfaceName].
	tooLongIfaceName = strings.Repeat("a", 16)
)

func TestIsFatal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err  error
		name string
		want bool
	}{{
		err:  nil,
		name: "nil",
		want: false,
	}, {
		err:  dhcpnet.ErrResourceExhausted,
		name: "resource_exhausted",
		want: true,
	}, {
		err:  errors.Annotate(dhcpnet.ErrSocketConfig, "wrapped: %w"),
		name: "wrapped_socket_config",
		want: true,
	}, {
		err:  dhcpnet.ErrBind,
		name: "bind",
		want: false,
	}, {
		err:  dhcpnet.ErrInterfaceUnavailable,
		name: "interface_unavailable",
		want: false,
	}, {
		err:  testError,
		name: "other",
		want: false,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, dhcpnet.IsFatal(tc.err))
		})
	}
}

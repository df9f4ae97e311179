package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/AdguardTeam/dhcpnet/internal/metrics"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTimeout is the common timeout for tests.
const testTimeout = 1 * time.Second

func TestRun_badInterface(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewDHCPNet("", reg)
	require.NoError(t, err)

	opts := &options{
		ifaceName: "this_name_is_too_long",
		logOutput: logOutputStdout,
		port:      67,
		listen:    true,
	}

	ctx := testutil.ContextWithTimeout(t, testTimeout)
	code := run(ctx, slogutil.NewDiscardLogger(), opts, m)
	assert.Equal(t, osutil.ExitCodeFailure, code)

	b := &bytes.Buffer{}
	err = writeMetrics(b, reg)
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, `dhcpnet_resolves_total{result="bad_interface_name"} 1`)

	// The socket isn't provisioned if the interface can't be resolved.
	assert.NotContains(t, out, "dhcpnet_listens_total")
}

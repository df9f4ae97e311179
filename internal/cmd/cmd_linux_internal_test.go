//go:build linux

package cmd

import (
	"bytes"
	"testing"

	"github.com/AdguardTeam/dhcpnet/internal/aghtest"
	"github.com/AdguardTeam/dhcpnet/internal/metrics"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_loopback(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewDHCPNet("", reg)
	require.NoError(t, err)

	opts := &options{
		ifaceName: aghtest.LoopbackIfaceName,
		logOutput: logOutputStdout,
	}

	ctx := testutil.ContextWithTimeout(t, testTimeout)
	code := run(ctx, slogutil.NewDiscardLogger(), opts, m)
	assert.Equal(t, osutil.ExitCodeSuccess, code)

	b := &bytes.Buffer{}
	err = writeMetrics(b, reg)
	require.NoError(t, err)

	assert.Contains(t, b.String(), `dhcpnet_resolves_total{result="ok"} 1`)
}

package cmd

import (
	"bytes"
	"testing"

	"github.com/AdguardTeam/dhcpnet/internal/dhcpnet"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCmdName is the command name for tests.
const testCmdName = "dhcpnet"

func TestParseOptions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		want *options
		name string
		args []string
	}{{
		want: &options{
			logOutput: logOutputStdout,
			port:      67,
		},
		name: "defaults",
		args: []string{},
	}, {
		want: &options{
			ifaceName: "eth0",
			logOutput: logOutputStderr,
			port:      6767,
			listen:    true,
			verbose:   true,
		},
		name: "short",
		args: []string{"-i", "eth0", "-l", "stderr", "-p", "6767", "-v", "--listen"},
	}, {
		want: &options{
			ifaceName: "wlan0",
			logOutput: logOutputStdout,
			port:      67,
			address:   true,
			hwAddr:    true,
			index:     true,
			metrics:   true,
		},
		name: "long",
		args: []string{
			"--interface=wlan0",
			"--address",
			"--index",
			"--hwaddr",
			"--metrics",
		},
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts, err := parseOptions(testCmdName, tc.args)
			require.NoError(t, err)

			assert.Equal(t, tc.want, opts)
		})
	}

	t.Run("bad_flag", func(t *testing.T) {
		t.Parallel()

		_, err := parseOptions(testCmdName, []string{"--port=abc"})
		assert.Error(t, err)
	})
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		opts       *options
		name       string
		wantErrMsg string
	}{{
		opts: &options{
			ifaceName: "eth0",
			logOutput: logOutputStdout,
			port:      67,
		},
		name:       "valid",
		wantErrMsg: "",
	}, {
		opts:       nil,
		name:       "nil",
		wantErrMsg: "no value",
	}, {
		opts: &options{
			ifaceName: "",
			logOutput: logOutputStdout,
			port:      67,
		},
		name:       "no_interface",
		wantErrMsg: "interface: empty value",
	}, {
		opts: &options{
			ifaceName: "eth0",
			logOutput: logOutputStdout,
			port:      65536,
		},
		name:       "bad_port",
		wantErrMsg: "port: out of range: 65536",
	}, {
		opts: &options{
			ifaceName: "eth0",
			logOutput: "syslog",
			port:      67,
		},
		name:       "bad_log_output",
		wantErrMsg: `log output: bad enum value: "syslog"`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			testutil.AssertErrorMsg(t, tc.wantErrMsg, tc.opts.Validate())
		})
	}
}

func TestOptions_request(t *testing.T) {
	t.Parallel()

	all := dhcpnet.Request{
		Address:      true,
		Index:        true,
		HardwareAddr: true,
	}

	testCases := []struct {
		opts *options
		name string
		want dhcpnet.Request
	}{{
		opts: &options{},
		name: "none_means_all",
		want: all,
	}, {
		opts: &options{index: true},
		name: "index",
		want: dhcpnet.Request{Index: true},
	}, {
		opts: &options{address: true, hwAddr: true},
		name: "address_hwaddr",
		want: dhcpnet.Request{Address: true, HardwareAddr: true},
	}, {
		opts: &options{address: true, index: true, hwAddr: true},
		name: "all",
		want: all,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.opts.request())
		})
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	usage(testCmdName, b)

	out := b.String()
	assert.Contains(t, out, "Usage of dhcpnet:\n")
	assert.Contains(t, out, "  --interface=name/-i name\n")
	assert.Contains(t, out, "  --listen\n")
	assert.Contains(t, out, "UDP port of the listen socket.  (Default value: 67)")
}

// Package cmd is the dhcpnet entry point.  It resolves the interface given on
// the command line and optionally provisions the DHCP listen socket on it, the
// way the DHCP engine does on startup.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/AdguardTeam/dhcpnet/internal/dhcpnet"
	"github.com/AdguardTeam/dhcpnet/internal/metrics"
	"github.com/AdguardTeam/dhcpnet/internal/version"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Main is the entry point of dhcpnet.
func Main() {
	cmdName := os.Args[0]
	opts, err := parseOptions(cmdName, os.Args[1:])
	exitCode, needExit := processOptions(opts, cmdName, err)
	if needExit {
		os.Exit(exitCode)
	}

	ctx := context.Background()
	l := newLogger(opts)
	defer slogutil.RecoverAndExit(ctx, l, osutil.ExitCodeFailure)

	l.DebugContext(ctx, "starting dhcpnet", "version", version.Version(), "pid", os.Getpid())

	reg := prometheus.NewRegistry()
	m, err := metrics.NewDHCPNet("", reg)
	check(err)

	exitCode = run(ctx, l, opts, m)

	if opts.metrics {
		err = writeMetrics(os.Stdout, reg)
		check(err)
	}

	os.Exit(exitCode)
}

// run resolves the interface and, if requested, provisions the listen socket.
// The socket is closed right away, since nothing reads from it.
func run(
	ctx context.Context,
	l *slog.Logger,
	opts *options,
	m dhcpnet.Metrics,
) (exitCode int) {
	r := dhcpnet.NewResolver(&dhcpnet.ResolverConfig{
		Logger:  l.With(slogutil.KeyPrefix, "resolver"),
		Metrics: m,
	})

	id, err := r.Resolve(ctx, opts.ifaceName, opts.request())
	if err != nil {
		l.ErrorContext(ctx, "resolving interface", slogutil.KeyError, err)

		return osutil.ExitCodeFailure
	}

	logIdentity(ctx, l, opts.ifaceName, id)

	if !opts.listen {
		return osutil.ExitCodeSuccess
	}

	p := dhcpnet.NewProvisioner(&dhcpnet.ProvisionerConfig{
		Logger:  l.With(slogutil.KeyPrefix, "provisioner"),
		Metrics: m,
	})

	// MustListen exits on the errors the DHCP engine can't recover from, so
	// only the recoverable ones get here.
	conn, err := p.MustListen(ctx, uint16(opts.port), opts.ifaceName)
	if err != nil {
		l.ErrorContext(ctx, "provisioning listen socket", slogutil.KeyError, err)

		return osutil.ExitCodeFailure
	}
	defer slogutil.CloseAndLog(ctx, l, conn, slog.LevelError)

	l.InfoContext(ctx, "listen socket ready", "iface", opts.ifaceName, "laddr", conn.LocalAddr())

	return osutil.ExitCodeSuccess
}

// logIdentity logs the resolved parts of id.  id must not be nil.
func logIdentity(ctx context.Context, l *slog.Logger, ifaceName string, id *dhcpnet.Identity) {
	attrs := []any{"iface", ifaceName}
	if id.Address.IsValid() {
		attrs = append(attrs, "addr", id.Address)
	}

	if id.HasIndex {
		attrs = append(attrs, "idx", id.Index)
	}

	if id.HardwareAddr != nil {
		attrs = append(attrs, "hwaddr", id.HardwareAddr)
	}

	l.InfoContext(ctx, "resolved interface", attrs...)
}

// writeMetrics writes the metrics gathered by g to w in the text exposition
// format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) (err error) {
	families, err := g.Gather()
	if err != nil {
		return errors.Annotate(err, "gathering metrics: %w")
	}

	for _, mf := range families {
		_, err = expfmt.MetricFamilyToText(w, mf)
		if err != nil {
			return errors.Annotate(err, "writing metrics: %w")
		}
	}

	return nil
}

// check is a simple error-checking helper.  It must only be used within Main.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

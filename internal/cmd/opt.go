package cmd

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/AdguardTeam/dhcpnet/internal/dhcpnet"
	"github.com/AdguardTeam/dhcpnet/internal/version"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/insomniacslk/dhcp/dhcpv4"
)

// options contains all command-line options for the dhcpnet binary.
type options struct {
	// ifaceName is the name of the network interface to resolve and listen
	// on.
	ifaceName string

	// logOutput is where to write the log.  Possible values:
	//
	//   - "stdout":  Write to stdout (the default).
	//   - "stderr":  Write to stderr.
	logOutput string

	// port is the UDP port of the listen socket.
	port uint

	// address, if true, requests the IPv4 address of the interface.
	address bool

	// help, if true, instructs dhcpnet to print the command-line option help
	// message and quit with a successful exit-code.
	help bool

	// hwAddr, if true, requests the hardware address of the interface.
	hwAddr bool

	// index, if true, requests the index of the interface.
	index bool

	// listen, if true, instructs dhcpnet to provision the listen socket after
	// resolving the interface.
	listen bool

	// metrics, if true, instructs dhcpnet to print the collected metrics to
	// stdout before quitting.
	metrics bool

	// verbose, if true, instructs dhcpnet to enable verbose logging.
	verbose bool

	// version, if true, instructs dhcpnet to print the version to stdout and
	// quit with a successful exit-code.  If verbose is also true, print a more
	// detailed version description.
	version bool
}

// type check
var _ validate.Interface = (*options)(nil)

// Validate implements the [validate.Interface] interface for *options.
func (opts *options) Validate() (err error) {
	if opts == nil {
		return errors.ErrNoValue
	}

	errs := []error{
		validate.NotEmpty("interface", opts.ifaceName),
	}

	if opts.port > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("port: %w: %d", errors.ErrOutOfRange, opts.port))
	}

	switch opts.logOutput {
	case logOutputStdout, logOutputStderr:
		// Go on.
	default:
		errs = append(errs, fmt.Errorf("log output: %w: %q", errors.ErrBadEnumValue, opts.logOutput))
	}

	return errors.Join(errs...)
}

// request returns the identity request described by opts.  If no parts are
// requested explicitly, all of them are.
func (opts *options) request() (req dhcpnet.Request) {
	req = dhcpnet.Request{
		Address:      opts.address,
		Index:        opts.index,
		HardwareAddr: opts.hwAddr,
	}

	if req == (dhcpnet.Request{}) {
		return dhcpnet.Request{
			Address:      true,
			Index:        true,
			HardwareAddr: true,
		}
	}

	return req
}

// Indexes to help with the [commandLineOptions] initialization.
const (
	ifaceNameIdx = iota
	logOutputIdx
	portIdx
	addressIdx
	helpIdx
	hwAddrIdx
	indexIdx
	listenIdx
	metricsIdx
	verboseIdx
	versionIdx
)

// commandLineOption contains information about a command-line option: its long
// and, if there is one, short forms, the value type, the description, and the
// default value.
type commandLineOption struct {
	defaultValue any
	description  string
	long         string
	short        string
	valueType    string
}

// commandLineOptions are all command-line options currently supported by
// dhcpnet.
var commandLineOptions = []*commandLineOption{
	ifaceNameIdx: {
		defaultValue: "",
		description:  "Name of the network interface.",
		long:         "interface",
		short:        "i",
		valueType:    "name",
	},

	logOutputIdx: {
		defaultValue: logOutputStdout,
		description:  `Where to write the log: "stdout" or "stderr".`,
		long:         "logout",
		short:        "l",
		valueType:    "output",
	},

	portIdx: {
		defaultValue: uint(dhcpv4.ServerPort),
		description:  "UDP port of the listen socket.",
		long:         "port",
		short:        "p",
		valueType:    "port",
	},

	addressIdx: {
		defaultValue: false,
		description:  "Resolve the IPv4 address of the interface.",
		long:         "address",
		short:        "",
		valueType:    "",
	},

	helpIdx: {
		defaultValue: false,
		description:  "Print this help message and quit.",
		long:         "help",
		short:        "h",
		valueType:    "",
	},

	hwAddrIdx: {
		defaultValue: false,
		description:  "Resolve the hardware address of the interface.",
		long:         "hwaddr",
		short:        "",
		valueType:    "",
	},

	indexIdx: {
		defaultValue: false,
		description:  "Resolve the index of the interface.",
		long:         "index",
		short:        "",
		valueType:    "",
	},

	listenIdx: {
		defaultValue: false,
		description:  "Provision the DHCP listen socket on the interface.",
		long:         "listen",
		short:        "",
		valueType:    "",
	},

	metricsIdx: {
		defaultValue: false,
		description:  "Print the collected metrics before quitting.",
		long:         "metrics",
		short:        "",
		valueType:    "",
	},

	verboseIdx: {
		defaultValue: false,
		description:  "Enable verbose logging.",
		long:         "verbose",
		short:        "v",
		valueType:    "",
	},

	versionIdx: {
		defaultValue: false,
		description: `Print the version to stdout and quit.  ` +
			`Print a more detailed version description with -v.`,
		long:      "version",
		short:     "",
		valueType: "",
	},
}

// parseOptions parses the command-line options for dhcpnet.
func parseOptions(cmdName string, args []string) (opts *options, err error) {
	flags := flag.NewFlagSet(cmdName, flag.ContinueOnError)

	opts = &options{}
	for i, fieldPtr := range []any{
		ifaceNameIdx: &opts.ifaceName,
		logOutputIdx: &opts.logOutput,
		portIdx:      &opts.port,
		addressIdx:   &opts.address,
		helpIdx:      &opts.help,
		hwAddrIdx:    &opts.hwAddr,
		indexIdx:     &opts.index,
		listenIdx:    &opts.listen,
		metricsIdx:   &opts.metrics,
		verboseIdx:   &opts.verbose,
		versionIdx:   &opts.version,
	} {
		addOption(flags, fieldPtr, commandLineOptions[i])
	}

	flags.Usage = func() { usage(cmdName, os.Stderr) }

	err = flags.Parse(args)
	if err != nil {
		// Don't wrap the error, because it's informative enough as is.
		return nil, err
	}

	return opts, nil
}

// addOption adds the command-line option described by o to flags using fieldPtr
// as the pointer to the value.
func addOption(flags *flag.FlagSet, fieldPtr any, o *commandLineOption) {
	switch fieldPtr := fieldPtr.(type) {
	case *string:
		flags.StringVar(fieldPtr, o.long, o.defaultValue.(string), o.description)
		if o.short != "" {
			flags.StringVar(fieldPtr, o.short, o.defaultValue.(string), o.description)
		}
	case *uint:
		flags.UintVar(fieldPtr, o.long, o.defaultValue.(uint), o.description)
		if o.short != "" {
			flags.UintVar(fieldPtr, o.short, o.defaultValue.(uint), o.description)
		}
	case *bool:
		flags.BoolVar(fieldPtr, o.long, o.defaultValue.(bool), o.description)
		if o.short != "" {
			flags.BoolVar(fieldPtr, o.short, o.defaultValue.(bool), o.description)
		}
	default:
		panic(fmt.Errorf("unexpected field pointer type %T", fieldPtr))
	}
}

// usage prints a usage message similar to the one printed by package flag but
// taking long vs. short versions into account as well as using more informative
// value hints.
func usage(cmdName string, output io.Writer) {
	options := slices.Clone(commandLineOptions)
	slices.SortStableFunc(options, func(a, b *commandLineOption) (res int) {
		return strings.Compare(a.long, b.long)
	})

	b := &strings.Builder{}
	_, _ = fmt.Fprintf(b, "Usage of %s:\n", cmdName)

	for _, o := range options {
		writeUsageLine(b, o)

		// Use four spaces before the tab to trigger good alignment for both 4-
		// and 8-space tab stops.
		if shouldIncludeDefault(o.defaultValue) {
			_, _ = fmt.Fprintf(b, "    \t%s  (Default value: %v)\n", o.description, o.defaultValue)
		} else {
			_, _ = fmt.Fprintf(b, "    \t%s\n", o.description)
		}
	}

	_, _ = io.WriteString(output, b.String())
}

// shouldIncludeDefault returns true if this default value should be printed.
func shouldIncludeDefault(v any) (ok bool) {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case uint:
		return v != 0
	default:
		return v == nil
	}
}

// writeUsageLine writes the usage line for the provided command-line option.
func writeUsageLine(b *strings.Builder, o *commandLineOption) {
	if o.short == "" {
		if o.valueType == "" {
			_, _ = fmt.Fprintf(b, "  --%s\n", o.long)
		} else {
			_, _ = fmt.Fprintf(b, "  --%s=%s\n", o.long, o.valueType)
		}

		return
	}

	if o.valueType == "" {
		_, _ = fmt.Fprintf(b, "  --%s/-%s\n", o.long, o.short)
	} else {
		_, _ = fmt.Fprintf(b, "  --%[1]s=%[3]s/-%[2]s %[3]s\n", o.long, o.short, o.valueType)
	}
}

// processOptions decides if dhcpnet should exit depending on the results of
// command-line option parsing.
func processOptions(
	opts *options,
	cmdName string,
	parseErr error,
) (exitCode int, needExit bool) {
	if parseErr != nil {
		// Assume that usage has already been printed.
		return osutil.ExitCodeArgumentError, true
	}

	if opts.help {
		usage(cmdName, os.Stdout)

		return osutil.ExitCodeSuccess, true
	}

	if opts.version {
		if opts.verbose {
			fmt.Print(version.Verbose())
		} else {
			fmt.Printf("dhcpnet %s\n", version.Version())
		}

		return osutil.ExitCodeSuccess, true
	}

	err := opts.Validate()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid options: %s\n", err)
		usage(cmdName, os.Stderr)

		return osutil.ExitCodeArgumentError, true
	}

	return osutil.ExitCodeSuccess, false
}

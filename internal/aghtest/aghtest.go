// Package aghtest contains utilities for testing.
package aghtest

import (
	"os"
	"testing"

	"github.com/AdguardTeam/golibs/errors"
)

// LoopbackIfaceName is the name of the loopback interface on Linux.
const LoopbackIfaceName = "lo"

// SkipIfNotPermitted skips the test if err is a permission error, which
// usually means that the test is run by an unprivileged user.
func SkipIfNotPermitted(tb testing.TB, err error) {
	tb.Helper()

	if errors.Is(err, os.ErrPermission) {
		tb.Skipf("skipping: %s", err)
	}
}

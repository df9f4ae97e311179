//go:build !linux

package dhcpnet

import (
	"github.com/AdguardTeam/golibs/errors"
)

// ioctlOpener is the [ControllerOpener] that is only implemented on Linux.
type ioctlOpener struct{}

// type check
var _ ControllerOpener = ioctlOpener{}

// Open implements the [ControllerOpener] interface for ioctlOpener.  It always
// returns [errors.ErrUnsupported].
func (ioctlOpener) Open() (c InterfaceController, err error) {
	return nil, errors.ErrUnsupported
}

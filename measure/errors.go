package measure

import "github.com/cockroachdb/errors"

// ErrInvalidArgument marks caller errors such as a non-positive iteration
// count. Test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

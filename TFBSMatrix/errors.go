package tfbsmatrix

import (
	"github.com/pkg/errors"
)

/*Error kinds of the merge pipeline. Every returned error wraps one of them */
var (
	ErrInputAccess = errors.New("Invalid TFBS coordinate file [error]")
	ErrFormat      = errors.New("Please check if input is TFBS coordinate file [error]")
	ErrSequencing  = errors.New("matrix skeleton must be built before population [error]")
	ErrOutputWrite = errors.New("Error writing output. Please try another file. [error]")
)

/*Kind return the error kind wrapped by err, nil if none */
func Kind(err error) error {
	for _, kind := range []error{ErrInputAccess, ErrFormat, ErrSequencing, ErrOutputWrite} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

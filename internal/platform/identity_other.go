//go:build !unix

package platform

import (
	"errors"

	"github.com/sungur/wslpath/internal/paths"
)

func identity(string) (paths.Identity, error) {
	return paths.Identity{}, errors.ErrUnsupported
}

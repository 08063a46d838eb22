// SPDX-License-Identifier: MIT

package correlate

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/correlategm/matrix"
)

var (
	// ErrUsage indicates wrong positional arguments.
	ErrUsage = errors.New("correlate: wrong arguments")

	// ErrInvalidConfig indicates an environment override out of range.
	ErrInvalidConfig = errors.New("correlate: invalid configuration")

	// ErrColumnMismatch indicates inputs with different spatial sample counts.
	// It wraps matrix.ErrDimensionMismatch.
	ErrColumnMismatch = fmt.Errorf("correlate: inputs have different column counts: %w", matrix.ErrDimensionMismatch)
)

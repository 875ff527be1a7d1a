// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import "errors"

var (
	// ErrInvalidScore reports an aggregation that produced a non-finite
	// score. Callers must treat it as "could not score", never as zero.
	ErrInvalidScore = errors.New("similarity score is not a finite value in [0, 1]")

	// ErrVectorCount reports a provider that returned a different number of
	// vectors than texts it was given.
	ErrVectorCount = errors.New("embedding provider returned wrong number of vectors")

	// ErrDimensionMismatch reports vectors of differing lengths.
	ErrDimensionMismatch = errors.New("embedding dimensions do not match")
)

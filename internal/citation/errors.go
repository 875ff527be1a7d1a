// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "errors"

var (
	// ErrMissingTitle reports metadata without a title.
	ErrMissingTitle = errors.New("source metadata has no title")

	// ErrMalformedAuthor reports a blank entry in the author list.
	ErrMalformedAuthor = errors.New("source metadata has a blank author")
)

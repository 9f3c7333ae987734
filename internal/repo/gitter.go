package repo

import (
	"context"
)

// Gitter defines the read-only git queries needed to find staged sources.
type Gitter interface {
	// TopLevel returns the absolute path of the repository's working tree root.
	TopLevel(ctx context.Context) (string, error)

	// StagedFiles lists the paths staged for the next commit, relative to
	// the top level, in the order git reports them. Deletions are omitted.
	StagedFiles(ctx context.Context) ([]string, error)
}

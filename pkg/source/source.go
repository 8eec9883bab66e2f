// Package source implements the services publication metadata is obtained from.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/KonishchevDmitry/easypub/pkg/fetch"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

// ErrNotFound is returned when the source doesn't know the requested identifier.
var ErrNotFound = errors.New("the publication is not found")

type Source interface {
	Name() string
	Get(ctx context.Context, id string) (*work.Work, error)
}

// fromFetchError converts fetch.ErrNotFound into ErrNotFound preserving the original error message.
func fromFetchError(err error) error {
	if errors.Is(err, fetch.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func finalize(source Source, id string, work *work.Work) (*work.Work, error) {
	if err := work.Normalize(); err != nil {
		return nil, fmt.Errorf("%s returned invalid metadata for %s: %w", source.Name(), id, err)
	}

	if work.Title == "" {
		return nil, fmt.Errorf("%s returned metadata without title for %s", source.Name(), id)
	}

	work.ID = id
	work.Source = source.Name()

	return work, nil
}

package publist

import (
	"context"
	"fmt"
	"os"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/samber/lo"

	"github.com/KonishchevDmitry/easypub/pkg/parse"
)

// Input is a list of publication identifiers to build the publication list from.
type Input struct {
	// DOIs of published works. Preprint identifiers are also accepted for works which have no DOI.
	Published []string
	// arXiv and ChemRxiv preprint identifiers.
	Preprints []string
}

func (i Input) Len() int {
	return len(i.Published) + len(i.Preprints)
}

// ReadInput reads the identifier files. Empty path means no identifiers of this kind.
func ReadInput(ctx context.Context, publishedPath string, preprintsPath string) (Input, error) {
	var (
		input Input
		err   error
	)

	if input.Published, err = readIDs(ctx, publishedPath); err != nil {
		return Input{}, err
	}

	if input.Preprints, err = readIDs(ctx, preprintsPath); err != nil {
		return Input{}, err
	}

	return input, nil
}

func readIDs(ctx context.Context, path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.L(ctx).Errorf("Failed to close %q: %s.", path, err)
		}
	}()

	ids, err := parse.IDs(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	for _, id := range lo.FindDuplicates(ids) {
		logging.L(ctx).Warnf("%q: %s is listed more than once.", path, id)
	}

	return lo.Uniq(ids), nil
}

package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	logging "github.com/KonishchevDmitry/go-easy-logging"

	"github.com/KonishchevDmitry/easypub/pkg/work"
)

// Manual reads manually written metadata from a directory of CSL-JSON files. It allows to add publications unknown to
// the services or to fix their incorrect metadata.
type Manual struct {
	dir string
}

var _ Source = &Manual{}

// NewManual returns a source which reads the metadata from the specified directory. Empty path means no manual
// metadata.
func NewManual(dir string) *Manual {
	return &Manual{dir: dir}
}

func (m *Manual) Name() string {
	return "manual metadata"
}

// ManualFileName returns name of the file with manual metadata for the specified identifier.
func ManualFileName(id string) string {
	return strings.TrimSpace(strings.NewReplacer("/", "-", ":", "-").Replace(id)) + ".json"
}

func (m *Manual) Get(ctx context.Context, id string) (*work.Work, error) {
	if m.dir == "" {
		return nil, ErrNotFound
	}

	path := filepath.Join(m.dir, ManualFileName(id))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s doesn't exist", ErrNotFound, path)
		}
		return nil, err
	}

	logging.L(ctx).Debugf("Using manual metadata for %s from %s.", id, path)

	var result work.Work
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return finalize(m, id, &result)
}

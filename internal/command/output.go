package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/google/renameio/v2"
)

// writeFile atomically replaces the file with the data generated by the writer.
func writeFile(ctx context.Context, path string, write func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Cleanup(); err != nil {
			logging.L(ctx).Errorf("Failed to delete a temporary file for %q: %s.", path, err)
		}
	}()

	if err := write(file); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}

	return file.CloseAtomicallyReplace()
}

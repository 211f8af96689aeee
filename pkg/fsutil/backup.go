package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is appended to a file name to form its sidecar backup path.
const BackupSuffix = ".pyproject-fmt.bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies path to its sidecar backup unless one already exists,
// so repeated runs keep the oldest content. It reports whether a backup was
// written.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backupPath := BackupPath(path)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}
	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether a sidecar backup exists for path.
func BackupExists(path string) bool {
	_, err := os.Stat(BackupPath(path))
	return err == nil
}

// Copyright Slam Academy, 2026. All rights reserved.

// Package backup implements the out-of-band recovery copy taken before a
// rebuild. There are no transactional semantics anywhere in the pipeline;
// this timestamped copy is the only way back.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampLayout matches the backup file names the deck workspace already
// contains, e.g. DJ_Foundations_backup_20260114_093042.pptx.
const timestampLayout = "20060102_150405"

// Snapshot copies the working file into backupDir under a timestamped
// name and returns the backup path. A missing working file is not an
// error: the first run has nothing to back up, and returns "".
func Snapshot(path, backupDir string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", backupDir, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	ts := time.Now().Format(timestampLayout)
	dst := filepath.Join(backupDir, fmt.Sprintf("%s_backup_%s%s", stem, ts, ext))

	if err := copyFile(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Reset copies the pristine source export over the working file,
// discarding whatever state the previous iteration left behind.
func Reset(source, output string) error {
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("source export %s: %w", source, err)
	}
	if dir := filepath.Dir(output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return copyFile(source, output)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(dst)
		return fmt.Errorf("copying %s to %s: %w", src, dst, copyErr)
	}
	return closeErr
}

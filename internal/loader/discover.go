package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Extensions accepted by Discover
var Extensions = []string{".xlsx", ".csv"}

// Discover returns the most recently modified input file in the first directory that has one.
// Office lock files ("~$...") and hidden files are ignored.
func Discover(dirs []string) (string, error) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		var best string
		var bestMod int64
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
				continue
			}
			if !lo.Contains(Extensions, strings.ToLower(filepath.Ext(name))) {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
				best, bestMod = filepath.Join(dir, name), mod
			}
		}
		if best != "" {
			return best, nil
		}
	}
	return "", fmt.Errorf("%w: no %s file in %v", ErrFileNotFound, strings.Join(Extensions, "/"), dirs)
}

// Signature identifies the current content of path: size, mtime and SHA-256.
func Signature(path string) (model.SourceInfo, error) {
	if err := checkFile(path); err != nil {
		return model.SourceInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return model.SourceInfo{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return model.SourceInfo{}, err
	}
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return model.SourceInfo{}, fmt.Errorf("hash %s: %w", path, err)
	}
	return model.SourceInfo{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Hash:    hex.EncodeToString(h.Sum(nil)),
	}, nil
}

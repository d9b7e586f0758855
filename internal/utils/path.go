package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds the menu data file from the places a user is likely
// to run the binary: the project root, its scripts dir, or an install dir.
type PathResolver struct {
	executableDir string
	workDir       string
}

// NewPathResolver creates a resolver anchored at the executable and the
// current working directory.
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not determine working directory: %v", err)
		cwd = execDir
	}
	log.Debugf("PathResolver initialized: execDir=%s, cwd=%s", execDir, cwd)
	return &PathResolver{executableDir: execDir, workDir: cwd}, nil
}

// Candidates lists the paths tried for a data file, in order.
func (pr *PathResolver) Candidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}
	return []string{
		filepath.Join(pr.workDir, userPath),
		filepath.Join(filepath.Dir(pr.workDir), userPath),
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(filepath.Dir(pr.executableDir), userPath),
	}
}

// FindDataFile returns the first candidate that is a regular file.
func (pr *PathResolver) FindDataFile(userPath string) (string, error) {
	if userPath == "" {
		return "", fmt.Errorf("empty data file path: %w", os.ErrNotExist)
	}
	candidates := pr.Candidates(userPath)
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found data file: %s", path)
			return path, nil
		}
		log.Debugf("Data file candidate not found: %s", path)
	}
	return "", fmt.Errorf("data file %s not found in %d locations: %w", userPath, len(candidates), os.ErrNotExist)
}

// Package permissions checks that the files holding the credential are only
// accessible to the current user.
package permissions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/systmms/pwclip/internal/logging"
)

// Expected modes
const (
	PrivateDir  fs.FileMode = 0o700
	PrivateFile fs.FileMode = 0o600
)

// PermissionChecker inspects file modes
type PermissionChecker struct {
	logger *logging.Logger
	goos   string
}

// NewPermissionChecker creates a new permission checker
func NewPermissionChecker(logger *logging.Logger) *PermissionChecker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &PermissionChecker{logger: logger, goos: runtime.GOOS}
}

// Request describes one path to check
type Request struct {
	Path string
	// Max is the widest acceptable permission set
	Max fs.FileMode
	// Dir is true when Path must be a directory
	Dir bool
}

// PermissionResult represents the result of a permission check
type PermissionResult struct {
	Path    string      `json:"path"`
	Allowed bool        `json:"allowed"`
	Reason  string      `json:"reason"`
	Mode    fs.FileMode `json:"mode,omitempty"`
}

// Check reports whether req.Path is private enough. A missing path passes.
func (p *PermissionChecker) Check(req Request) *PermissionResult {
	res := &PermissionResult{Path: req.Path}

	info, err := os.Stat(req.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Allowed = true
			res.Reason = "not present"
			return res
		}
		res.Reason = fmt.Sprintf("cannot stat: %v", err)
		p.logger.Debug("Permission check failed for %s: %v", req.Path, err)
		return res
	}

	res.Mode = info.Mode().Perm()

	if info.IsDir() != req.Dir {
		kind := "a file"
		if req.Dir {
			kind = "a directory"
		}
		res.Reason = "expected " + kind
		return res
	}

	// Windows modes do not reflect ACLs; the profile directory is per-user.
	if p.goos == "windows" {
		res.Allowed = true
		res.Reason = "mode not checked on windows"
		return res
	}

	if extra := res.Mode &^ req.Max; extra != 0 {
		res.Reason = fmt.Sprintf("mode %#o grants %#o beyond %#o", res.Mode, extra, req.Max)
		p.logger.Warn("%s is accessible to other users (mode %#o)", req.Path, res.Mode)
		return res
	}

	res.Allowed = true
	res.Reason = "private"
	return res
}

// CheckDataFiles checks the data directory and the files inside it
func (p *PermissionChecker) CheckDataFiles(dataDir string, files ...string) []*PermissionResult {
	results := []*PermissionResult{p.Check(Request{Path: dataDir, Max: PrivateDir, Dir: true})}
	for _, f := range files {
		results = append(results, p.Check(Request{Path: f, Max: PrivateFile}))
	}
	return results
}

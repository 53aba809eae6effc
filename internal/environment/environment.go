// Package environment resolves the local game installation: the
// platform base directory, installed versions, and the mod directory
// for a version/loader pair.
//
// Installation itself (downloading version metadata, running loader
// installers) is an external concern. LocalResolver only inspects and
// prepares the already-installed directory tree.
package environment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/iamglitched-debug/glitched.launcher/internal/launch"
)

// DefaultBaseDir returns the platform-specific game directory.
func DefaultBaseDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, ".minecraft")
		}
		return filepath.Join(xdg.DataHome, ".minecraft")
	case "darwin":
		return filepath.Join(xdg.Home, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(xdg.Home, ".minecraft")
	}
}

// releasePattern matches plain dotted-numeric release ids (e.g. 1.20.1),
// excluding snapshots and loader version folders.
var releasePattern = regexp.MustCompile(`^\d+(\.\d+)+$`)

// LocalResolver implements launch.Resolver against an installed tree
// rooted at Base. All paths it returns are under Base.
type LocalResolver struct {
	Base string
}

// EnsureInstalled verifies the requested version is present locally,
// resolves the runnable version id for the loader kind, and ensures the
// matching mod directory exists. It is idempotent and performs no
// network I/O.
func (r *LocalResolver) EnsureInstalled(ctx context.Context, version string, loader launch.Loader) (launch.Target, error) {
	if err := ctx.Err(); err != nil {
		return launch.Target{}, err
	}

	runnable := version
	if loader != launch.LoaderNone {
		id, err := r.resolveLoaderVersion(version, loader)
		if err != nil {
			return launch.Target{}, err
		}
		runnable = id
	} else if !r.versionInstalled(version) {
		return launch.Target{}, fmt.Errorf("version %s is not installed under %s", version, r.Base)
	}

	modDir, err := r.ModDir(version, loader)
	if err != nil {
		return launch.Target{}, err
	}

	return launch.Target{
		VersionID: runnable,
		ModDir:    modDir,
		GameDir:   r.Base,
	}, nil
}

// ListVersions scans the installed versions directory and returns the
// ids for the given channel ("release" filters to dotted-numeric ids;
// anything else returns all). On failure it returns an empty slice.
func (r *LocalResolver) ListVersions(ctx context.Context, channel string) []string {
	if ctx.Err() != nil {
		return nil
	}
	entries, err := os.ReadDir(filepath.Join(r.Base, "versions"))
	if err != nil {
		return nil
	}

	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id := e.Name()
		if !r.versionInstalled(id) {
			continue
		}
		if channel == "release" && !releasePattern.MatchString(id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ModDir resolves and creates the mod directory for a version/loader
// pair: <base>/mods for vanilla, <base>/versions/<runnable>/mods for a
// loader.
func (r *LocalResolver) ModDir(version string, loader launch.Loader) (string, error) {
	dir := filepath.Join(r.Base, "mods")
	if loader != launch.LoaderNone {
		id, err := r.resolveLoaderVersion(version, loader)
		if err != nil {
			return "", err
		}
		dir = filepath.Join(r.Base, "versions", id, "mods")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating mod directory: %w", err)
	}
	return dir, nil
}

// versionInstalled reports whether a version folder holds its jar or
// json metadata file.
func (r *LocalResolver) versionInstalled(id string) bool {
	dir := filepath.Join(r.Base, "versions", id)
	for _, name := range []string{id + ".jar", id + ".json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

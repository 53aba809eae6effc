package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iamglitched-debug/glitched.launcher/internal/launch"
)

// MappingFile is the stored loader-version mapping under the base
// directory. It is the authoritative association between a
// (game version, loader) pair and the runnable version folder;
// directory-name scanning is only a backfill for missing entries.
const MappingFile = "loader-versions.yml"

// resolveLoaderVersion returns the runnable version id for a loader
// install of the given game version. The stored mapping wins when its
// folder still exists; otherwise the versions directory is scanned and
// the result is persisted back into the mapping.
func (r *LocalResolver) resolveLoaderVersion(version string, loader launch.Loader) (string, error) {
	key := mappingKey(version, loader)

	m, _ := r.loadMapping()
	if id, ok := m[key]; ok {
		if _, err := os.Stat(filepath.Join(r.Base, "versions", id)); err == nil {
			return id, nil
		}
		// Mapped folder is gone; fall through to a fresh scan.
	}

	id, err := r.scanLoaderVersion(version, loader)
	if err != nil {
		return "", err
	}

	if m == nil {
		m = map[string]string{}
	}
	m[key] = id
	if err := r.saveMapping(m); err != nil {
		// The scan result is still usable; the mapping is a cache.
		return id, nil
	}
	return id, nil
}

// scanLoaderVersion applies the directory-name heuristic: loader
// folders start with the loader prefix and end with the game version.
// The lexicographically last match wins.
func (r *LocalResolver) scanLoaderVersion(version string, loader launch.Loader) (string, error) {
	prefix := "forge"
	if loader == launch.LoaderFabric {
		prefix = "fabric-loader"
	}

	entries, err := os.ReadDir(filepath.Join(r.Base, "versions"))
	if err != nil {
		return "", fmt.Errorf("reading versions directory: %w", err)
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, version) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%s for %s is not installed under %s", loader, version, r.Base)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func mappingKey(version string, loader launch.Loader) string {
	return loader.String() + "/" + version
}

func (r *LocalResolver) loadMapping() (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(r.Base, MappingFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", MappingFile, err)
	}
	m := map[string]string{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", MappingFile, err)
	}
	return m, nil
}

func (r *LocalResolver) saveMapping(m map[string]string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", MappingFile, err)
	}
	if err := os.WriteFile(filepath.Join(r.Base, MappingFile), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", MappingFile, err)
	}
	return nil
}

package environment

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iamglitched-debug/glitched.launcher/internal/launch"
)

// installVersion creates <base>/versions/<id>/<id>.jar.
func installVersion(t *testing.T, base, id string) {
	t.Helper()
	dir := filepath.Join(base, "versions", id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".jar"), []byte("jar"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// installLoaderDir creates a bare loader version folder.
func installLoaderDir(t *testing.T, base, id string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(base, "versions", id), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureInstalled_Vanilla(t *testing.T) {
	base := t.TempDir()
	installVersion(t, base, "1.20.1")
	r := &LocalResolver{Base: base}

	target, err := r.EnsureInstalled(context.Background(), "1.20.1", launch.LoaderNone)
	if err != nil {
		t.Fatalf("EnsureInstalled: %v", err)
	}
	if target.VersionID != "1.20.1" {
		t.Errorf("VersionID = %q, want 1.20.1", target.VersionID)
	}
	if want := filepath.Join(base, "mods"); target.ModDir != want {
		t.Errorf("ModDir = %q, want %q", target.ModDir, want)
	}
	if target.GameDir != base {
		t.Errorf("GameDir = %q, want %q", target.GameDir, base)
	}
	if fi, err := os.Stat(target.ModDir); err != nil || !fi.IsDir() {
		t.Errorf("mod directory was not created: %v", err)
	}
}

func TestEnsureInstalled_VanillaMissing(t *testing.T) {
	r := &LocalResolver{Base: t.TempDir()}
	_, err := r.EnsureInstalled(context.Background(), "1.20.1", launch.LoaderNone)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
	if !strings.Contains(err.Error(), "1.20.1") {
		t.Errorf("error = %q, want to mention the version", err)
	}
}

func TestEnsureInstalled_FabricUsesLoaderModDir(t *testing.T) {
	base := t.TempDir()
	installVersion(t, base, "1.20.1")
	installLoaderDir(t, base, "fabric-loader-0.15.11-1.20.1")
	r := &LocalResolver{Base: base}

	target, err := r.EnsureInstalled(context.Background(), "1.20.1", launch.LoaderFabric)
	if err != nil {
		t.Fatalf("EnsureInstalled: %v", err)
	}
	if target.VersionID != "fabric-loader-0.15.11-1.20.1" {
		t.Errorf("VersionID = %q, want the loader version folder", target.VersionID)
	}
	want := filepath.Join(base, "versions", "fabric-loader-0.15.11-1.20.1", "mods")
	if target.ModDir != want {
		t.Errorf("ModDir = %q, want %q", target.ModDir, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("loader mod directory was not created: %v", err)
	}
}

func TestEnsureInstalled_FabricMissing(t *testing.T) {
	base := t.TempDir()
	installVersion(t, base, "1.20.1")
	r := &LocalResolver{Base: base}

	_, err := r.EnsureInstalled(context.Background(), "1.20.1", launch.LoaderFabric)
	if err == nil {
		t.Fatal("expected error when no fabric loader folder is installed")
	}
}

func TestResolveLoaderVersion_ScanBackfillsMapping(t *testing.T) {
	base := t.TempDir()
	installVersion(t, base, "1.20.1")
	installLoaderDir(t, base, "fabric-loader-0.15.11-1.20.1")
	r := &LocalResolver{Base: base}

	if _, err := r.EnsureInstalled(context.Background(), "1.20.1", launch.LoaderFabric); err != nil {
		t.Fatalf("EnsureInstalled: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, MappingFile))
	if err != nil {
		t.Fatalf("mapping file not written: %v", err)
	}
	if !strings.Contains(string(data), "fabric-loader-0.15.11-1.20.1") {
		t.Errorf("mapping = %q, want scanned loader version persisted", data)
	}
}

func TestResolveLoaderVersion_MappingWinsOverScan(t *testing.T) {
	base := t.TempDir()
	installVersion(t, base, "1.20.1")
	// Two candidates; the scan would pick the lexicographically last.
	installLoaderDir(t, base, "fabric-loader-0.14.0-1.20.1")
	installLoaderDir(t, base, "fabric-loader-0.15.11-1.20.1")

	mapping := "fabric/1.20.1: fabric-loader-0.14.0-1.20.1\n"
	if err := os.WriteFile(filepath.Join(base, MappingFile), []byte(mapping), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &LocalResolver{Base: base}
	target, err := r.EnsureInstalled(context.Background(), "1.20.1", launch.LoaderFabric)
	if err != nil {
		t.Fatalf("EnsureInstalled: %v", err)
	}
	if target.VersionID != "fabric-loader-0.14.0-1.20.1" {
		t.Errorf("VersionID = %q, want the mapped version, not the scan result", target.VersionID)
	}
}

func TestResolveLoaderVersion_StaleMappingRescans(t *testing.T) {
	base := t.TempDir()
	installVersion(t, base, "1.20.1")
	installLoaderDir(t, base, "fabric-loader-0.15.11-1.20.1")

	// Mapping points at a folder that no longer exists.
	mapping := "fabric/1.20.1: fabric-loader-0.13.0-1.20.1\n"
	if err := os.WriteFile(filepath.Join(base, MappingFile), []byte(mapping), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &LocalResolver{Base: base}
	target, err := r.EnsureInstalled(context.Background(), "1.20.1", launch.LoaderFabric)
	if err != nil {
		t.Fatalf("EnsureInstalled: %v", err)
	}
	if target.VersionID != "fabric-loader-0.15.11-1.20.1" {
		t.Errorf("VersionID = %q, want the rescanned version", target.VersionID)
	}
}

func TestListVersions(t *testing.T) {
	base := t.TempDir()
	installVersion(t, base, "1.20.1")
	installVersion(t, base, "1.19.4")
	installVersion(t, base, "23w13a")                       // snapshot
	installLoaderDir(t, base, "fabric-loader-0.15-1.20.1") // no jar/json

	r := &LocalResolver{Base: base}

	release := r.ListVersions(context.Background(), "release")
	if len(release) != 2 {
		t.Fatalf("release versions = %v, want two dotted-numeric ids", release)
	}
	for _, id := range release {
		if id != "1.20.1" && id != "1.19.4" {
			t.Errorf("unexpected release id %q", id)
		}
	}

	all := r.ListVersions(context.Background(), "all")
	if len(all) != 3 {
		t.Errorf("all versions = %v, want three installed ids", all)
	}
}

func TestListVersions_EmptyOnFailure(t *testing.T) {
	r := &LocalResolver{Base: filepath.Join(t.TempDir(), "does-not-exist")}
	if got := r.ListVersions(context.Background(), "release"); len(got) != 0 {
		t.Errorf("ListVersions = %v, want empty on failure", got)
	}
}

func TestModDir_VanillaDefault(t *testing.T) {
	base := t.TempDir()
	r := &LocalResolver{Base: base}

	dir, err := r.ModDir("1.20.1", launch.LoaderNone)
	if err != nil {
		t.Fatalf("ModDir: %v", err)
	}
	if want := filepath.Join(base, "mods"); dir != want {
		t.Errorf("ModDir = %q, want %q", dir, want)
	}
}

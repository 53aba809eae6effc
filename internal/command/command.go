// Package command assembles the child-process argument vector for a
// resolved launch. Builders are pure functions of their inputs: no I/O,
// no process state.
package command

import (
	"errors"
	"path/filepath"

	"github.com/iamglitched-debug/glitched.launcher/internal/identity"
	"github.com/iamglitched-debug/glitched.launcher/internal/launch"
)

// JavaBuilder builds a java invocation around the installed version jar
// at <gameDir>/versions/<id>/<id>.jar.
type JavaBuilder struct {
	// Java is the path to the java binary. Empty means "java",
	// resolved via PATH at spawn time.
	Java string
}

// Build implements launch.Builder. The argument vector carries exactly
// the pass-through set: username, stable id, auth sentinel, heap flags,
// game directory, window size, and the resolved mod directory.
func (b *JavaBuilder) Build(target launch.Target, id identity.Identity, req launch.Request) ([]string, error) {
	if target.VersionID == "" {
		return nil, errors.New("resolved target has no version id")
	}

	java := b.Java
	if java == "" {
		java = "java"
	}
	jar := filepath.Join(target.GameDir, "versions", target.VersionID, target.VersionID+".jar")

	argv := []string{java}
	argv = append(argv, req.JVMArgs()...)
	argv = append(argv, "-Dloader.modsDir="+target.ModDir)
	argv = append(argv, "-jar", jar)
	argv = append(argv,
		"--username", id.Name,
		"--uuid", id.ID.String(),
		"--accessToken", id.Token,
		"--gameDir", target.GameDir,
	)
	argv = append(argv, req.GameArgs()...)
	return argv, nil
}

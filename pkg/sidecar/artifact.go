package sidecar

import (
	"os"
	"path/filepath"
)

// Packaging layout produced by the sidecar build step.
const (
	SidecarDirName = "sidecar"
	DistDirName    = "dist"
	EntryFileName  = "index.js"
)

// ArtifactPath is the resolved location of the bundled sidecar
type ArtifactPath struct {
	// Root is the host resource root
	Root string
	// Dir is the sidecar directory and the child's working directory
	Dir string
	// Entry is the script handed to the runtime
	Entry string
}

// ResolveArtifact computes the artifact layout under root.
// root must be an existing directory; relative roots are made absolute so
// the entry path stays valid from inside the sidecar directory.
func ResolveArtifact(root string) (ArtifactPath, error) {
	if root == "" {
		return ArtifactPath{}, &ResourceRootError{Path: root, Reason: "empty path"}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return ArtifactPath{}, &ResourceRootError{Path: root, Reason: "cannot make absolute", Err: err}
	}
	root = abs

	info, err := os.Stat(root)
	if err != nil {
		return ArtifactPath{}, &ResourceRootError{Path: root, Reason: "cannot stat", Err: err}
	}
	if !info.IsDir() {
		return ArtifactPath{}, &ResourceRootError{Path: root, Reason: "not a directory"}
	}

	return layout(root), nil
}

func layout(root string) ArtifactPath {
	dir := filepath.Join(root, SidecarDirName)
	return ArtifactPath{
		Root:  root,
		Dir:   dir,
		Entry: filepath.Join(dir, DistDirName, EntryFileName),
	}
}

// Exists reports whether the entry file can be found.
// Stat errors of any kind count as absent.
func (a ArtifactPath) Exists() bool {
	_, err := os.Stat(a.Entry)
	return err == nil
}

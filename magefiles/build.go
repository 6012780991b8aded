//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const binDir = "bin"

var tools = []string{"gears", "gearmesh"}

type Build mg.Namespace

// All builds every command into bin/.
func (Build) All() error {
	for _, tool := range tools {
		if err := buildTool(tool); err != nil {
			return err
		}
	}
	return nil
}

// Viewer builds the SDL/OpenGL viewer.
func (Build) Viewer() error {
	return buildTool("gears")
}

// Mesh builds the headless gearmesh tool.
func (Build) Mesh() error {
	return buildTool("gearmesh")
}

func buildTool(name string) error {
	out := filepath.Join(binDir, name)
	_, err := executeCmd("go", withArgs("build", "-o", out, "./cmd/"+name), withStream())
	return err
}

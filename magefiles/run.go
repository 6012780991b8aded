//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Viewer starts the gear viewer in a window.
func (Run) Viewer() error {
	fmt.Println("Run viewer...")
	_, err := executeCmd("go", withArgs("run", "./cmd/gears", "-windowed"), withStream())
	return err
}

// Preview renders the default gear to preview.webp.
func Preview() error {
	mg.Deps(Build.Mesh)
	_, err := executeCmd(binDir+"/gearmesh", withArgs("preview", "-size", "768", "preview.webp"), withStream())
	return err
}

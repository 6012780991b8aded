//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Gear runs the mesh generator tests only.
func (Test) Gear() error {
	_, err := executeCmd("go", withArgs("test", "-v", "./pkg/gear/...", "./pkg/math/..."), withStream())
	return err
}

// Headless runs the packages that need neither a display nor a GL context.
func (Test) Headless() error {
	_, err := executeCmd("go", withArgs("test",
		"./pkg/...",
		"./internal/config/...",
		"./internal/logger/...",
		"./internal/physics/...",
		"./internal/preview/...",
		"./internal/export/...",
		"./internal/game/entity/...",
		"./internal/engine/camera/...",
		"./internal/engine/debug/...",
		"./internal/engine/lighting/...",
		"./internal/engine/picking/...",
	), withStream())
	return err
}

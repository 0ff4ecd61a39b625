// Package sample embeds an illustrative artifact bundle. It seeds fresh
// installs (`cyclesense artifacts import --sample`) and backs tests that
// need a complete, valid bundle.
package sample

import (
	_ "embed"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
)

//go:embed bundle.yaml
var bundleYAML []byte

// YAML returns a copy of the embedded bundle file.
func YAML() []byte {
	return append([]byte(nil), bundleYAML...)
}

// Spec parses the embedded bundle. The file ships with the binary, so a
// parse failure is a build defect and panics.
func Spec() *artifacts.Spec {
	spec, err := artifacts.ParseYAML(bundleYAML)
	if err != nil {
		panic("sample: " + err.Error())
	}
	return spec
}

// Bundle returns the validated sample bundle.
func Bundle() *artifacts.Bundle {
	b, err := artifacts.Build(Spec())
	if err != nil {
		panic("sample: " + err.Error())
	}
	return b
}

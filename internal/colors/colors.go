// Package colors maps CSS3 color names to their hex codes. Tag colors are
// stored by name and the hex value is derived here at save time.
package colors

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed css3.yaml
var css3Table []byte

var nameToHex map[string]string

func init() {
	if err := yaml.Unmarshal(css3Table, &nameToHex); err != nil {
		panic(fmt.Sprintf("colors: bad embedded color table: %v", err))
	}
}

// Hex returns the hex code for a CSS3 color name. The lookup is
// case-insensitive and ignores surrounding whitespace.
func Hex(name string) (string, error) {
	hex, ok := nameToHex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown color name %q", name)
	}
	return hex, nil
}

// IsValid reports whether name is a known CSS3 color name.
func IsValid(name string) bool {
	_, ok := nameToHex[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

package testutil

import (
	"strings"
)

// Descriptor returns the content of an Application descriptor named name.
// Extra lines are appended to the [Desktop Entry] group verbatim.
func Descriptor(name string, lines ...string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=" + name + "\n")
	b.WriteString("Exec=" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + "\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Hidden returns a descriptor with NoDisplay=true
func Hidden(name string, lines ...string) string {
	return Descriptor(name, append([]string{"NoDisplay=true"}, lines...)...)
}

// Visible returns a descriptor with NoDisplay=false
func Visible(name string, lines ...string) string {
	return Descriptor(name, append([]string{"NoDisplay=false"}, lines...)...)
}

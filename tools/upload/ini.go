package upload

import (
	"fmt"
	"strings"
)

// slotIni renders the metadata file the brain reads next to a program
// binary.
func slotIni(slot int, name, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[program]\n")
	fmt.Fprintf(&b, "version = 1.0.0\n")
	fmt.Fprintf(&b, "name = %s\n", FoldName(name))
	fmt.Fprintf(&b, "slot = %d\n", slot)
	fmt.Fprintf(&b, "icon = USER%03dx.bmp\n", slot)
	fmt.Fprintf(&b, "description = %s\n", FoldName(description))
	return b.String()
}

// slotFiles returns the on-card paths for a program slot.
func slotFiles(slot int) (bin, ini string) {
	return fmt.Sprintf("/slot_%d.bin", slot), fmt.Sprintf("/slot_%d.ini", slot)
}

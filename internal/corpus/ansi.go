package corpus

import "strings"

// StripANSI removes CSI escape sequences ending in 'm' (colors and text
// attributes) from line
func StripANSI(line string) string {
	// Fast path: check for escape character using byte scan (faster than strings.Contains)
	hasEscape := false
	for i := 0; i < len(line); i++ {
		if line[i] == 0x1b {
			hasEscape = true
			break
		}
	}
	if !hasEscape {
		return line
	}

	var b strings.Builder
	b.Grow(len(line))
	i := 0
	for i < len(line) {
		// Check for escape sequence
		if line[i] == 0x1b && i+1 < len(line) && line[i+1] == '[' {
			// Find end of escape sequence
			end := i + 2
			for end < len(line) && line[end] != 'm' {
				end++
			}
			if end < len(line) {
				i = end + 1
				continue
			}
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String()
}

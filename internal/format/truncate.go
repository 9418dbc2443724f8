package format

const ellipsisMarker = "...truncated"

// TruncateLine cuts a formatted line to at most maxLen bytes, ending it
// with ellipsisMarker when there is room for it. The worker stage does not
// call it; context sanitization (engine.Sanitize) is what bounds record
// sizes there. Adapted from the teacher's internal/logger/utils.go
// truncateString.
func TruncateLine(line []byte, maxLen int) []byte {
	if maxLen <= 0 || len(line) <= maxLen {
		return line
	}
	if maxLen <= len(ellipsisMarker) {
		return line[:maxLen]
	}
	s := string(line[:maxLen-len(ellipsisMarker)]) + ellipsisMarker
	return []byte(s)
}

// TruncateString truncates s to maxLength code units; it is the string
// counterpart of TruncateLine.
func TruncateString(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= len(ellipsisMarker) {
		return s[:maxLength]
	}
	return s[:maxLength-len(ellipsisMarker)] + ellipsisMarker
}

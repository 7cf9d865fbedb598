package binparse

import "bytes"

// CString returns the bytes of b up to the first NUL as a string. It reports
// false for an empty b. Without a NUL the whole slice is used.
func CString(b []byte) (string, bool) {
	if len(b) == 0 {
		return "", false
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), true
}

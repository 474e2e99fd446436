package dataset

import "bytes"

// Content returns size repetitions of the ASCII digit digit % 10.
//
// Content is the only source of dataset values: generation and verification
// call it with the same arguments and never keep the results.
func Content(digit, size int) []byte {
	if size <= 0 {
		return []byte{}
	}

	return bytes.Repeat([]byte{'0' + byte(digit%10)}, size)
}

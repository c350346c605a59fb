// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package style

import "unicode/utf16"

// Hash returns a stable, non-negative 32-bit hash of s. It is the classic
// h = h*31 + c string hash computed over UTF-16 code units with 32-bit
// wraparound, so sites created by earlier releases keep their styling.
func Hash(s string) uint32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}

// pick reduces the hash of s to an index in [0, n).
func pick(s string, n int) int {
	return int(Hash(s) % uint32(n))
}

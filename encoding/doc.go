// Package encoding implements the column codec catalog used by a
// section's four parallel streams: key-delta (BITPACK), sequence
// (PLAIN u64), record type (RUNLENGTH), and value (PLAIN or LENGTH
// bytes), per §4.2.
package encoding

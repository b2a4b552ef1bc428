// Package chunk splits raw ticket text into retrieval-sized passages.
//
// The splitter is a pure, single-pass, greedy function: it needs no
// configuration beyond a maximum chunk size and cannot fail on well-formed
// string input.
package chunk

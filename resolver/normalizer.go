// Package resolver maps free-text drug names to RXCUI identifiers and
// aggregates drug-class attributes onto them. It works purely on tables
// already loaded in memory; fetching and file parsing live in drugparser.
package resolver

import (
	"iter"
	"strings"
)

// Tokens yields the candidate lookup keys for a raw drug name, in order.
// Co-listed names ("AMLODIPINE/BENAZEPRIL") are split on the slash, each
// segment is reduced to its first whitespace-delimited word so dosage and
// form suffixes drop off ("LISINOPRIL 10MG" -> "lisinopril"), and every
// token is lowercased. Empty or whitespace-only input yields nothing.
// The sequence is restartable: ranging over it twice repeats the tokens.
func Tokens(raw string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, segment := range strings.Split(raw, "/") {
			fields := strings.Fields(segment)
			if len(fields) == 0 {
				continue
			}
			if !yield(strings.ToLower(fields[0])) {
				return
			}
		}
	}
}

// concatTokens chains token sequences into one, in argument order.
func concatTokens(seqs ...iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, seq := range seqs {
			for tok := range seq {
				if !yield(tok) {
					return
				}
			}
		}
	}
}

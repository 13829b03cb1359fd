package resolver

import (
	"slices"
	"testing"
)

func collectTokens(raw string) []string {
	var tokens []string
	for tok := range Tokens(raw) {
		tokens = append(tokens, tok)
	}
	return tokens
}

func TestTokensSingleName(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"aspirin", []string{"aspirin"}},
		{"ASPIRIN", []string{"aspirin"}},
		{"Lisinopril", []string{"lisinopril"}},
	}

	for _, tt := range tests {
		got := collectTokens(tt.input)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Tokens(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTokensDropsDosageSuffix(t *testing.T) {
	got := collectTokens("LISINOPRIL 10MG")
	want := []string{"lisinopril"}
	if !slices.Equal(got, want) {
		t.Errorf("Tokens(%q) = %v, want %v", "LISINOPRIL 10MG", got, want)
	}
}

func TestTokensSlashSeparatedNames(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"drugx/drugy", []string{"drugx", "drugy"}},
		{"AMLODIPINE/BENAZEPRIL HCL", []string{"amlodipine", "benazepril"}},
		{"A 5MG/B 10MG/C", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		got := collectTokens(tt.input)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Tokens(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTokensEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t", "/", " / "} {
		if got := collectTokens(input); len(got) != 0 {
			t.Errorf("Tokens(%q) = %v, want no tokens", input, got)
		}
	}
}

func TestTokensRestartable(t *testing.T) {
	seq := Tokens("aspirin/ibuprofen")

	var first, second []string
	for tok := range seq {
		first = append(first, tok)
	}
	for tok := range seq {
		second = append(second, tok)
	}

	if !slices.Equal(first, second) {
		t.Errorf("second pass %v differs from first pass %v", second, first)
	}
}

func TestTokensEarlyBreak(t *testing.T) {
	count := 0
	for range Tokens("a/b/c") {
		count++
		if count == 1 {
			break
		}
	}
	if count != 1 {
		t.Errorf("expected to stop after 1 token, got %d", count)
	}
}

func TestConcatTokens(t *testing.T) {
	seq := concatTokens(Tokens("aspirin"), Tokens("BAYER ASPIRIN"))

	var got []string
	for tok := range seq {
		got = append(got, tok)
	}

	want := []string{"aspirin", "bayer"}
	if !slices.Equal(got, want) {
		t.Errorf("concatenated tokens = %v, want %v", got, want)
	}
}

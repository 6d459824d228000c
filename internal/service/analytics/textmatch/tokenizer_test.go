package textmatch

import (
	"reflect"
	"testing"
)

func TestTokenize_English(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Read: Clean-Code (ch.3)",
			want: []string{"read", "clean", "code", "ch"},
		},
		{
			name: "drops stop words and single chars",
			text: "I want to read a book",
			want: []string{"read", "book"},
		},
		{
			name: "deduplicates",
			text: "run run RUN",
			want: []string{"run"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "only stop words",
			text: "want to do it",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenize_IdeographicBigrams(t *testing.T) {
	got := Tokenize("写论文")
	want := []string{"写论文", "写论", "论文"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize(写论文) = %v, want %v", got, want)
	}
}

func TestTokenize_IdeographicSharedBigram(t *testing.T) {
	a := Tokenize("写论文")
	b := Tokenize("论文初稿")

	if !SignificantOverlap(a, b) {
		t.Errorf("expected %v and %v to share the 论文 bigram", a, b)
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	const text = "学习 Go 语言, read docs!"
	first := Tokenize(text)
	for i := 0; i < 10; i++ {
		if got := Tokenize(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Tokenize not deterministic: %v vs %v", i, got, first)
		}
	}
}

func TestTokenize_DropsChinesePlanningVerbs(t *testing.T) {
	got := Tokenize("准备 健身")
	want := []string{"健身"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

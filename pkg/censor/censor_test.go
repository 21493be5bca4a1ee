package censor

import (
	"path/filepath"
	"testing"
	"unicode/utf8"
)

func TestFilter_Censor(t *testing.T) {
	f := New()

	tests := []struct {
		name       string
		sentence   string
		digitAware bool
		want       string
	}{
		{"Empty", "", false, ""},
		{"No match", "hello world", false, "hello world"},
		{"Two words", "Mary had a little shit lamb who was a little fucker.", false, "Mary had a little **** lamb who was a little ******."},
		{"Mixed case", "Mary had a little ShIt lamb who was a little FuCkEr.", false, "Mary had a little **** lamb who was a little ******."},
		{"Scunthorpe alone", "Scunthorpe", false, "Scunthorpe"},
		{"Scunthorpe then match", "scunthorpe cunt", false, "scunthorpe ****"},
		{"Place name kept", "Don't be a cock, Cockburn.", false, "Don't be a ****, Cockburn."},
		{"Repeated word", "shit shit SHIT", false, "**** **** ****"},
		{"Phrase keeps spaces", "I was drilling the alaskan pipeline today", false, "I was drilling the ******* ******** today"},
		{"Phrase with digits", "2 girls 1 cup is my favourite video", false, "* ***** * *** is my favourite video"},
		{"Trailing digit ignored", "You are a motherfucker1", false, "You are a motherfucker1"},
		{"Trailing digit censored", "You are a motherfucker1", true, "You are a *************"},
		{"Substring of innocent word", "The title of the document", false, "The title of the document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Censor(tt.sentence, '*', tt.digitAware)
			if got != tt.want {
				t.Errorf("Censor(%q) = %q; want %q", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestFilter_CensorPreservesLength(t *testing.T) {
	f := New()

	inputs := []string{
		"You are a complete twat and a dick.",
		"Scunthorpe United fucking lost again, bollocks!",
		"Ünïcödé shit ünïcödé",
		"2 girls 1 cup, 2 GIRLS 1 CUP",
	}

	for _, in := range inputs {
		got := f.Censor(in, '#', false)
		if utf8.RuneCountInString(got) != utf8.RuneCountInString(in) {
			t.Errorf("Censor(%q) = %q; want the same rune count", in, got)
		}

		gr, ir := []rune(got), []rune(in)
		for i := range ir {
			if gr[i] != ir[i] && gr[i] != '#' {
				t.Errorf("Censor(%q) changed rune %d from %q to %q", in, i, ir[i], gr[i])
			}
		}
	}
}

func TestFilter_CensorIdempotent(t *testing.T) {
	f := New()

	once := f.CensorString("Mary had a little shit lamb who was a little fucker.")
	twice := f.CensorString(once)
	if once != twice {
		t.Errorf("want censoring to be a fixed point, got %q then %q", once, twice)
	}
}

func TestFilter_CensorAllowList(t *testing.T) {
	f := New()
	if err := f.AllowList().Add("shit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Mary had a little shit lamb who was a little ******."
	got := f.CensorString("Mary had a little shit lamb who was a little fucker.")
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}

	// allow-listed word must survive even when another entry resolves to it
	want = "shit ********"
	got = f.CensorString("shit bullshit")
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestFilter_CensorCustomChar(t *testing.T) {
	f, err := NewWithWords([]string{"fuck", "alaskan pipeline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "What the ____ is an _______ ________?"
	got := f.Censor("What the FUCK is an Alaskan Pipeline?", '_', false)
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestFilter_LoadFromJSON(t *testing.T) {
	f := New()

	if err := f.LoadFromJSON(filepath.Join("test_data", "words.json")); err != nil {
		t.Fatalf("failed to load words: %v", err)
	}

	if f.Count() != 4 {
		t.Errorf("want 4 words after load, got %d", f.Count())
	}
	if f.IsProfanity("cunt") {
		t.Error("want default corpus replaced by the loaded list")
	}
	if ok, _ := f.AllowList().Contains("scunthorpe"); !ok {
		t.Error("want allow entries loaded")
	}

	if err := f.LoadFromJSON(filepath.Join("test_data", "missing.json")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestFilter_CensorKeepsInvalidUTF8(t *testing.T) {
	f, err := NewWithWords([]string{"shit"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []string{
		"clean \xffhello",
		"shitake \xfe",
		"",
	}
	for _, in := range tests {
		if got := f.Censor(in, '*', false); got != in {
			t.Errorf("want unchanged %q, got %q", in, got)
		}
	}
}

package recipe

import (
	"reflect"
	"testing"
)

func TestParseEmptyInput(t *testing.T) {
	p := NewParser()
	got := p.Parse("")
	want := Draft{Title: "", Ingredients: []string{}, Steps: []string{}, RawText: ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse(\"\") = %+v, want %+v", got, want)
	}
}

func TestParseWhitespaceOnly(t *testing.T) {
	p := NewParser()
	got := p.Parse("  \n\t\n ")
	if got.Title != "" || len(got.Ingredients) != 0 || len(got.Steps) != 0 {
		t.Fatalf("whitespace input produced structure: %+v", got)
	}
	if got.RawText != "  \n\t\n " {
		t.Fatalf("raw text not preserved: %q", got.RawText)
	}
}

const explicitSections = `Tomato Soup

Ingredients:
2 tomatoes
1 onion
salt

Instructions:

1. Chop the tomatoes 2. Fry the onion`

func TestParseExplicitSections(t *testing.T) {
	p := NewParser()
	got := p.Parse(explicitSections)

	if got.Title != "Tomato Soup" {
		t.Fatalf("title = %q", got.Title)
	}
	wantIngredients := []string{"2 tomatoes", "1 onion", "salt"}
	if !reflect.DeepEqual(got.Ingredients, wantIngredients) {
		t.Fatalf("ingredients = %v, want %v", got.Ingredients, wantIngredients)
	}
	wantSteps := []string{"Chop the tomatoes", "Fry the onion"}
	if !reflect.DeepEqual(got.Steps, wantSteps) {
		t.Fatalf("steps = %v, want %v", got.Steps, wantSteps)
	}
	if got.RawText != explicitSections {
		t.Fatalf("raw text not preserved")
	}
}

func TestParseIdempotent(t *testing.T) {
	p := NewParser()
	first := p.Parse(explicitSections)
	second := p.Parse(first.RawText)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestParseFallbackHeuristics(t *testing.T) {
	text := `Pancakes

200 g flour
2 eggs

Mix everything well.

Fry on a hot pan.`
	p := NewParser()
	got := p.Parse(text)

	if got.Title != "Pancakes" {
		t.Fatalf("title = %q", got.Title)
	}
	wantIngredients := []string{"200 g flour", "2 eggs"}
	if !reflect.DeepEqual(got.Ingredients, wantIngredients) {
		t.Fatalf("ingredients = %v, want %v", got.Ingredients, wantIngredients)
	}
	wantSteps := []string{"Mix everything well.", "Fry on a hot pan."}
	if !reflect.DeepEqual(got.Steps, wantSteps) {
		t.Fatalf("steps = %v, want %v", got.Steps, wantSteps)
	}
}

func TestFindTitleSkipsNoise(t *testing.T) {
	p := NewParser()
	got := p.Parse("123\nab\nIngredients\nBeef Stew\n500 g beef")
	if got.Title != "Beef Stew" {
		t.Fatalf("title = %q, want Beef Stew", got.Title)
	}
}

func TestFindTitleFallsBackToFirstLine(t *testing.T) {
	p := NewParser()
	got := p.Parse("12\n!!")
	if got.Title != "12" {
		t.Fatalf("title = %q, want first line verbatim", got.Title)
	}
}

func TestIngredientsStopAtStepsKeywordMidSection(t *testing.T) {
	// A steps keyword inside the ingredients region ends collection early.
	text := `Stew
Ingredients
1 carrot
follow the instructions on the stock cube
2 potatoes`
	p := NewParser()
	got := p.Parse(text)
	want := []string{"1 carrot"}
	if !reflect.DeepEqual(got.Ingredients, want) {
		t.Fatalf("ingredients = %v, want %v", got.Ingredients, want)
	}
}

func TestSectionEndRequiresPrefix(t *testing.T) {
	// A keyword mid-sentence must not close the steps section.
	text := `Cake
Directions
Mix the dry parts.

Bake following the preparation notes.`
	p := NewParser()
	got := p.Parse(text)
	want := []string{"Mix the dry parts.", "Bake following the preparation notes."}
	if !reflect.DeepEqual(got.Steps, want) {
		t.Fatalf("steps = %v, want %v", got.Steps, want)
	}
}

func TestSplitStepsMarkers(t *testing.T) {
	cases := []struct {
		name string
		body []string
		want []string
	}{
		{
			"inline-markers",
			[]string{"1. Cut the onion 2. Fry the meat"},
			[]string{"Cut the onion", "Fry the meat"},
		},
		{
			"parenthesis-markers",
			[]string{"1) Boil water", "2) Add pasta"},
			[]string{"Boil water", "Add pasta"},
		},
		{
			"continuation-merge",
			[]string{"1. Knead the dough", "until smooth", "2. Let it rest"},
			[]string{"Knead the dough until smooth", "Let it rest"},
		},
		{
			"blank-line-closes",
			[]string{"Whisk the eggs", "", "Fold in the flour"},
			[]string{"Whisk the eggs", "Fold in the flour"},
		},
		{
			"trailing-step-flushed",
			[]string{"3. Serve warm"},
			[]string{"Serve warm"},
		},
		{
			"empty",
			nil,
			[]string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := splitSteps(tc.body); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("splitSteps(%v) = %v, want %v", tc.body, got, tc.want)
			}
		})
	}
}

func TestLooksLikeIngredient(t *testing.T) {
	p := NewParser()
	cases := []struct {
		line string
		want bool
	}{
		{"200 g flour", true},
		{"flour 200g", true},
		{"2 eggs", true},
		{"a pinch of salt", true},
		{"Mix everything well", false},
		{"", false},
		{"Serve hot", false},
	}
	for _, tc := range cases {
		if got := p.looksLikeIngredient(tc.line); got != tc.want {
			t.Fatalf("looksLikeIngredient(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestCustomVocabularies(t *testing.T) {
	p := NewParser(
		WithIngredientKeywords("zutaten"),
		WithStepKeywords("zubereitung"),
	)
	text := `Kartoffelsuppe
Zutaten
500 g Kartoffeln
Zubereitung
1. Kartoffeln schälen`
	got := p.Parse(text)
	if !reflect.DeepEqual(got.Ingredients, []string{"500 g Kartoffeln"}) {
		t.Fatalf("ingredients = %v", got.Ingredients)
	}
	if !reflect.DeepEqual(got.Steps, []string{"Kartoffeln schälen"}) {
		t.Fatalf("steps = %v", got.Steps)
	}
}

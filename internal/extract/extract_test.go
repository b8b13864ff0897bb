package extract

import (
	"reflect"
	"testing"
)

func TestName(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		want       string
		recognized bool
	}{
		{"greeting with introduction", "Hi, I'm Jordan Lee", "Jordan Lee", true},
		{"bare name", "Jordan Lee", "Jordan Lee", true},
		{"my name is", "my name is Ada Lovelace", "Ada Lovelace", true},
		{"greeting only", "hi", "", false},
		{"greeting pair", "hello hey", "", false},
		{"single character", "hello B", "", false},
		{"mixed case filler", "HELLO I AM Grace Hopper", "Grace Hopper", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Name(tc.input)
			if ok != tc.recognized {
				t.Fatalf("recognized = %v, want %v", ok, tc.recognized)
			}
			if got != tc.want {
				t.Fatalf("name = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestContact(t *testing.T) {
	cases := []struct {
		name  string
		input string
		email string
		phone string
	}{
		{"both", "jordan@example.com, 555-123-4567", "jordan@example.com", "555-123-4567"},
		{"email only", "reach me at dev.person+hr@mail.example.org thanks", "dev.person+hr@mail.example.org", ""},
		{"phone only", "(555) 123-4567", "", "(555) 123-4567"},
		{"phone with country code", "call +1 555.123.4567", "", "+1 555.123.4567"},
		{"neither", "ask my agent", "", ""},
		{"missing tld", "bogus@localhost is not an address", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email, phone := Contact(tc.input)
			if email != tc.email {
				t.Fatalf("email = %q, want %q", email, tc.email)
			}
			if phone != tc.phone {
				t.Fatalf("phone = %q, want %q", phone, tc.phone)
			}
		})
	}
}

func TestExperience(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"years", "5 years", "5"},
		{"year singular", "about 1 year in total", "1"},
		{"yrs", "10yrs", "10"},
		{"free text kept verbatim", "I started back in college ", "I started back in college"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Experience(tc.input); got != tc.want {
				t.Fatalf("experience = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
		ok    bool
	}{
		{"comma separated", "Python, React, AWS", []string{"python", "react", "aws"}, true},
		{"slash and and", "Go/Python, Docker and Kubernetes", []string{"go", "python", "docker", "kubernetes"}, true},
		{"no comma", "Python and React", nil, false},
		{"empty items dropped", "Python,, ,React", []string{"python", "react"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SplitList(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("items = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestKeywordScan(t *testing.T) {
	got := KeywordScan("I use Python and React for most projects")
	want := []string{"python", "react"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scan = %v, want %v", got, want)
	}

	if found := KeywordScan("mostly spreadsheets"); found != nil {
		t.Fatalf("expected no keywords, got %v", found)
	}
}

func TestKeywordScanPreservesVocabularyOrder(t *testing.T) {
	got := KeywordScan("react on aws, written in python")
	want := []string{"python", "react", "aws"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scan = %v, want %v", got, want)
	}
}

func TestCategorize(t *testing.T) {
	categorized := Categorize([]string{"python", "react", "postgresql", "docker", "interpretive dance"})

	if got := categorized[CategoryLanguages]; !reflect.DeepEqual(got, []string{"python"}) {
		t.Fatalf("languages = %v", got)
	}
	if got := categorized[CategoryFrontend]; !reflect.DeepEqual(got, []string{"react"}) {
		t.Fatalf("frontend = %v", got)
	}
	if got := categorized[CategoryDatabases]; !reflect.DeepEqual(got, []string{"postgresql"}) {
		t.Fatalf("databases = %v", got)
	}
	if got := categorized[CategoryCloud]; !reflect.DeepEqual(got, []string{"docker"}) {
		t.Fatalf("cloud = %v", got)
	}
	if _, ok := categorized[CategoryTesting]; ok {
		t.Fatalf("expected testing category to be omitted")
	}

	for _, items := range categorized {
		for _, item := range items {
			if item == "interpretive dance" {
				t.Fatalf("unmatched item leaked into categorized view")
			}
		}
	}
}

func TestCategorizeFirstCategoryWins(t *testing.T) {
	// "javascript" contains the languages keyword "java", so it lands in
	// languages even though jquery-style frontend entries exist.
	categorized := Categorize([]string{"javascript"})
	if got := categorized[CategoryLanguages]; !reflect.DeepEqual(got, []string{"javascript"}) {
		t.Fatalf("languages = %v", got)
	}
	if _, ok := categorized[CategoryFrontend]; ok {
		t.Fatalf("item assigned to more than one category")
	}
}

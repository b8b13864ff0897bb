package extract

import (
	"regexp"
	"strings"
)

// Category buckets the known technology vocabulary for fallback question
// templates. The set is fixed; it is not extensible at runtime.
type Category string

const (
	CategoryLanguages Category = "languages"
	CategoryFrontend  Category = "frontend"
	CategoryBackend   Category = "backend"
	CategoryDatabases Category = "databases"
	CategoryCloud     Category = "cloud"
	CategoryMobile    Category = "mobile"
	CategoryDevOps    Category = "devops"
	CategoryAIML      Category = "ai_ml"
	CategoryTesting   Category = "testing"
)

// Categories lists the classification order. The first category whose
// keywords match an item wins, so the order is part of the contract.
var Categories = []Category{
	CategoryLanguages,
	CategoryFrontend,
	CategoryBackend,
	CategoryDatabases,
	CategoryCloud,
	CategoryMobile,
	CategoryDevOps,
	CategoryAIML,
	CategoryTesting,
}

// vocabulary maps each category to its known technology keywords. Keyword
// order within a category matters for the tier-2 scan, which preserves
// vocabulary order in its output.
var vocabulary = map[Category][]string{
	CategoryLanguages: {
		"python", "java", "javascript", "typescript", "c#", "c++",
		"ruby", "go", "rust", "php", "swift", "kotlin",
	},
	CategoryFrontend: {
		"react", "angular", "vue", "svelte", "html", "css",
		"sass", "bootstrap", "tailwind", "jquery",
	},
	CategoryBackend: {
		"node", "express", "django", "flask", "spring", "asp.net",
		"laravel", "rails", "fastapi", "graphql",
	},
	CategoryDatabases: {
		"sql", "mysql", "postgresql", "mongodb", "firebase", "oracle",
		"sqlite", "redis", "elasticsearch", "cassandra",
	},
	CategoryCloud: {
		"aws", "azure", "gcp", "docker", "kubernetes", "serverless",
		"lambda", "terraform", "heroku", "cloudflare",
	},
	CategoryMobile: {
		"android", "ios", "react native", "flutter",
		"xamarin", "ionic", "swiftui", "objective-c",
	},
	CategoryDevOps: {
		"git", "github", "gitlab", "jenkins", "ci/cd",
		"ansible", "prometheus", "grafana", "nginx", "linux",
	},
	CategoryAIML: {
		"machine learning", "deep learning", "tensorflow", "pytorch",
		"scikit-learn", "keras", "nlp", "pandas", "numpy", "opencv",
	},
	CategoryTesting: {
		"selenium", "cypress", "jest", "pytest",
		"junit", "mocha", "playwright", "testng",
	},
}

var andSplitRe = regexp.MustCompile(`(?i)\band\b`)

// SplitList implements the tier-1 tech stack extraction: when the message
// contains a comma it is treated as an explicit list. Items are split on
// commas, then further on slashes and the word "and", lowercased and
// trimmed. No keyword validation is applied to the resulting items.
func SplitList(text string) ([]string, bool) {
	if !strings.Contains(text, ",") {
		return nil, false
	}

	var items []string
	for _, part := range strings.Split(text, ",") {
		for _, sub := range strings.Split(part, "/") {
			for _, token := range andSplitRe.Split(sub, -1) {
				token = strings.ToLower(strings.TrimSpace(token))
				if token != "" {
					items = append(items, token)
				}
			}
		}
	}
	return items, len(items) > 0
}

// KeywordScan implements the tier-2 extraction: a case-insensitive substring
// scan of the message against the full vocabulary, collecting every keyword
// that appears. Output order follows the vocabulary, not the message.
func KeywordScan(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, category := range Categories {
		for _, keyword := range vocabulary[category] {
			if strings.Contains(lower, keyword) {
				found = append(found, keyword)
			}
		}
	}
	return found
}

// Categorize assigns each tech stack item to the first category whose
// keywords the item equals or contains. Items matching no category are
// dropped from the categorized view; they stay in the raw list. Empty
// categories are omitted from the result.
func Categorize(items []string) map[Category][]string {
	categorized := make(map[Category][]string)

	for _, item := range items {
		lower := strings.ToLower(strings.TrimSpace(item))
		if lower == "" {
			continue
		}

	categories:
		for _, category := range Categories {
			for _, keyword := range vocabulary[category] {
				if lower == keyword || strings.Contains(lower, keyword) {
					categorized[category] = append(categorized[category], item)
					break categories
				}
			}
		}
	}
	return categorized
}

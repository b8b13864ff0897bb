package question

import (
	"fmt"
	"strings"

	"github.com/talentscout/screener/internal/extract"
)

// categoryTemplates maps the categories that get a tailored fallback
// question, in the order they are considered, to their template.
var categoryTemplates = []struct {
	category extract.Category
	template string
}{
	{extract.CategoryLanguages, "Walk me through a production issue you debugged in %s. What tooling and process did you use to find the root cause?"},
	{extract.CategoryFrontend, "How would you diagnose and improve the rendering performance of a large %s application?"},
	{extract.CategoryBackend, "Describe how you would design a rate-limited public API using %s, and what trade-offs you would make."},
	{extract.CategoryDatabases, "A query against %s has become slow as the dataset grew. How do you approach indexing and query optimization?"},
	{extract.CategoryCloud, "Describe how you would deploy and monitor a high-availability service on %s."},
}

// genericQuestions pad the fallback set when the categorized stack yields
// fewer than the minimum number of tailored questions.
var genericQuestions = []string{
	"Can you describe a challenging project where you used these technologies?",
	"What is your strongest technical skill, and how have you applied it in your work?",
	"How do you stay updated with the latest developments in these technologies?",
}

// fallbackQuestions builds the deterministic question set used when the
// generation service is unavailable: one templated question per populated
// category referencing its first matched technology, padded with generic
// questions to at least three, capped at five total.
func fallbackQuestions(techStack []string) []string {
	categorized := extract.Categorize(techStack)

	var questions []string
	for _, entry := range categoryTemplates {
		matched := categorized[entry.category]
		if len(matched) == 0 {
			continue
		}
		questions = append(questions, fmt.Sprintf(entry.template, matched[0]))
		if len(questions) == maxQuestions {
			return questions
		}
	}

	for _, generic := range genericQuestions {
		if len(questions) >= minFallbackQuestions {
			break
		}
		questions = append(questions, generic)
	}

	return questions
}

func numberQuestions(questions []string) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, q)
	}
	return b.String()
}

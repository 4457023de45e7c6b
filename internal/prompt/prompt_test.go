package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"finsight/internal/domain"
	"finsight/internal/prompt"
)

func TestCompose_FrenchAnalysisPrompt(t *testing.T) {
	p := prompt.Compose(domain.LanguageFrench, domain.TaskAnalysis)

	assert.Contains(t, p, "1. NATURE ET CONTEXTE")
	assert.Contains(t, p, "5. CONCLUSION")
	assert.NotContains(t, p, "6.")
	assert.Contains(t, p, prompt.ChartOpenTag)
	assert.Contains(t, p, prompt.ChartCloseTag)
	assert.Contains(t, p, "Titles in UPPERCASE")
}

func TestCompose_EnglishAnalysisPromptHasSixSections(t *testing.T) {
	p := prompt.Compose(domain.LanguageEnglish, domain.TaskAnalysis)

	assert.Contains(t, p, "1. NATURE AND CONTEXT")
	assert.Contains(t, p, "5. REVENUE AND NET INCOME")
	assert.Contains(t, p, "6. CONCLUSION")
}

// The two locales deliberately differ in section count.
func TestCompose_SectionCountsDivergeByLocale(t *testing.T) {
	fr := prompt.Lookup(domain.LanguageFrench)
	en := prompt.Lookup(domain.LanguageEnglish)

	assert.Len(t, fr.Sections, 5)
	assert.Len(t, en.Sections, 6)
}

func TestCompose_UnknownLanguageFallsBack(t *testing.T) {
	p := prompt.Compose(domain.Language("de"), domain.TaskAnalysis)

	assert.Equal(t, prompt.Compose(prompt.DefaultLanguage, domain.TaskAnalysis), p)
}

func TestChatPrompt_EmbedsContext(t *testing.T) {
	p := prompt.ChatPrompt(domain.LanguageFrench, "CONTENU DU DOCUMENT")

	assert.Contains(t, p, "CONTENU DU DOCUMENT")
	assert.Contains(t, p, "Sois précis et concis")
	// Intro comes before the document, rules after.
	assert.Less(t, strings.Index(p, "assistant expert"), strings.Index(p, "CONTENU DU DOCUMENT"))
	assert.Greater(t, strings.Index(p, "CONSIGNES"), strings.Index(p, "CONTENU DU DOCUMENT"))
}

func TestExcludedTitles(t *testing.T) {
	assert.Equal(t, []string{"CHIFFRES D'AFFAIRES ET RÉSULTAT NET"}, prompt.ExcludedTitles(domain.LanguageFrench))
	assert.Empty(t, prompt.ExcludedTitles(domain.LanguageEnglish))
}

func TestCompose_IsDeterministic(t *testing.T) {
	assert.Equal(t,
		prompt.Compose(domain.LanguageFrench, domain.TaskAnalysis),
		prompt.Compose(domain.LanguageFrench, domain.TaskAnalysis))
}

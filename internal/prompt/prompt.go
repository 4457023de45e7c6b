// Package prompt builds the system instruction text sent to the inference
// service. Per-language behavior lives in a single lookup table so the
// pipeline never branches on locale outside this package.
package prompt

import (
	"fmt"
	"strings"

	"finsight/internal/domain"
)

// DefaultLanguage is used when a caller supplies no or an unknown locale.
const DefaultLanguage = domain.LanguageFrench

// Sentinel tags wrapping the structured numeric block in the model's reply.
const (
	ChartOpenTag  = "[CHART_DATA]"
	ChartCloseTag = "[/CHART_DATA]"
)

// constraintBlock is appended to every analysis prompt. It forbids the two
// markup forms the parser strips and forces upper-case section titles.
const constraintBlock = `CONSIGNES :
- NO Bold (**), NO Hashtags (#).
- Titles in UPPERCASE.
- Stay factual.`

// Template describes one locale's full prompt behavior: the ordered section
// titles the model is asked to produce, the titles the parser must drop from
// the final result, and the conversational instruction text.
type Template struct {
	Sections       []string
	ExcludedTitles []string

	analysisIntro  string
	chartDirective string
	chatIntro      string
	chatRules      string
}

// The French and English templates deliberately differ in section count: the
// French report folds revenue/net-income into the accounts section and the
// parser drops the model's occasional duplicate, while the English report
// keeps it as a standalone section.
var templates = map[domain.Language]Template{
	domain.LanguageFrench: {
		Sections: []string{
			"NATURE ET CONTEXTE",
			"PRÉSENTATION DE LA SOCIÉTÉ",
			"SYNTHÈSE DES AXES MAJEURS",
			"ANALYSE DES COMPTES",
			"CONCLUSION",
		},
		ExcludedTitles: []string{
			"CHIFFRES D'AFFAIRES ET RÉSULTAT NET",
		},
		analysisIntro:  "Tu es un analyste financier senior. Structure de réponse :",
		chartDirective: `Ajoute [CHART_DATA] {"years": [], "revenue": [], "netIncome": []} [/CHART_DATA]`,
		chatIntro:      "Tu es un assistant expert. Réponds aux questions en te basant sur ce document :",
		chatRules: `CONSIGNES :
- Sois précis et concis.
- Si l'information n'est pas dans le texte, dis que tu ne sais pas.
- Pas de gras (**), pas de hashtags (#), pas de tableaux.`,
	},
	domain.LanguageEnglish: {
		Sections: []string{
			"NATURE AND CONTEXT",
			"COMPANY OVERVIEW",
			"KEY STRATEGIC AXES",
			"TECHNICAL OR OPERATIONAL DETAILS",
			"REVENUE AND NET INCOME",
			"CONCLUSION",
		},
		ExcludedTitles: nil,
		analysisIntro:  "You are a senior financial analyst. Response structure:",
		chartDirective: `Add [CHART_DATA] {"years": [], "revenue": [], "netIncome": []} [/CHART_DATA]`,
		chatIntro:      "You are an expert assistant. Answer questions based on this document:",
		chatRules: `GUIDELINES:
- Be precise and concise.
- If the information is not in the text, say you do not know.
- No bold (**), no hashtags (#), no tables.`,
	},
}

// Lookup returns the template for lang, falling back to the default locale
// for unknown values. It never fails.
func Lookup(lang domain.Language) Template {
	if t, ok := templates[lang]; ok {
		return t
	}
	return templates[DefaultLanguage]
}

// Compose builds the system prompt for the given language and task. For the
// chat task the grounding context is embedded separately via ChatPrompt; this
// returns only the instruction text.
func Compose(lang domain.Language, task domain.TaskKind) string {
	t := Lookup(lang)
	switch task {
	case domain.TaskChat:
		return t.chatIntro + "\n\n" + t.chatRules
	default:
		var b strings.Builder
		b.WriteString(t.analysisIntro)
		b.WriteString("\n")
		for i, title := range t.Sections {
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
		}
		b.WriteString(t.chartDirective)
		b.WriteString("\n")
		b.WriteString(constraintBlock)
		return b.String()
	}
}

// ChatPrompt builds the conversational system prompt grounding answers in the
// given (already truncated) document context.
func ChatPrompt(lang domain.Language, context string) string {
	t := Lookup(lang)
	return t.chatIntro + "\n\n" + context + "\n\n" + t.chatRules
}

// ExcludedTitles returns the section titles suppressed from parsed output for
// the given language.
func ExcludedTitles(lang domain.Language) []string {
	return Lookup(lang).ExcludedTitles
}

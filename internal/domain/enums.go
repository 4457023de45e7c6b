package domain

// Language selects the analysis locale. It drives prompt template selection
// and the per-language section suppression rule.
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
)

// ParseLanguage normalizes a raw language value, falling back to the given
// default for unknown or empty input.
func ParseLanguage(raw string, fallback Language) Language {
	switch Language(raw) {
	case LanguageFrench, LanguageEnglish:
		return Language(raw)
	default:
		return fallback
	}
}

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// IsValid reports whether the role is one a caller may submit in a chat history.
func (r ChatRole) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// TaskKind selects which prompt template family to compose.
type TaskKind string

const (
	TaskAnalysis TaskKind = "analysis"
	TaskChat     TaskKind = "chat"
)

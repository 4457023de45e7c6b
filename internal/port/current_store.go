package port

import "finsight/internal/domain"

// CurrentStore is the ephemeral keyed cache of the active analysis, one slot
// per client session key. It backs reloads of the in-progress analysis and is
// cleared when the caller starts over.
type CurrentStore interface {
	Load(key string) (*domain.CurrentAnalysis, bool)
	Save(key string, cur domain.CurrentAnalysis)
	Clear(key string)
}

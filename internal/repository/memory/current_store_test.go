package memory

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/domain"
)

func TestCurrentStore_SaveLoadClear(t *testing.T) {
	store := NewCurrentStore()

	_, ok := store.Load("tab-1")
	assert.False(t, ok)

	store.Save("tab-1", domain.CurrentAnalysis{
		Company:   "Acme",
		Analysis:  "1. NATURE ET CONTEXTE\n\nContexte.",
		RawText:   "texte brut",
		ChartData: json.RawMessage(`{"years": [2023]}`),
	})

	cur, ok := store.Load("tab-1")
	require.True(t, ok)
	assert.Equal(t, "Acme", cur.Company)
	assert.JSONEq(t, `{"years": [2023]}`, string(cur.ChartData))

	// Keys are isolated.
	_, ok = store.Load("tab-2")
	assert.False(t, ok)

	store.Clear("tab-1")
	_, ok = store.Load("tab-1")
	assert.False(t, ok)
}

func TestCurrentStore_SaveOverwrites(t *testing.T) {
	store := NewCurrentStore()
	store.Save("tab-1", domain.CurrentAnalysis{Company: "Acme"})
	store.Save("tab-1", domain.CurrentAnalysis{Company: "Globex"})

	cur, ok := store.Load("tab-1")
	require.True(t, ok)
	assert.Equal(t, "Globex", cur.Company)
}

func TestCurrentStore_LoadReturnsCopy(t *testing.T) {
	store := NewCurrentStore()
	store.Save("tab-1", domain.CurrentAnalysis{Company: "Acme"})

	cur, ok := store.Load("tab-1")
	require.True(t, ok)
	cur.Company = "mutated"

	again, ok := store.Load("tab-1")
	require.True(t, ok)
	assert.Equal(t, "Acme", again.Company)
}

func TestCurrentStore_ConcurrentAccess(t *testing.T) {
	store := NewCurrentStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Save("tab-1", domain.CurrentAnalysis{Company: "Acme"})
			store.Load("tab-1")
			store.Clear("tab-1")
		}()
	}
	wg.Wait()
}

package merge

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func byName(products []Product) map[string]Product {
	out := make(map[string]Product, len(products))
	for _, p := range products {
		out[NormalizeName(p.Name)] = p
	}
	return out
}

func TestMergeProducts_HigherScoreDespiteIdentifier(t *testing.T) {
	m := New()
	a := []Product{{Name: "Apple", Kcal100: 52}}
	b := []Product{{Name: "apple", Kcal100: 0, ID: "x"}}

	for _, tc := range []struct {
		name          string
		local, remote []Product
	}{
		{"A local", a, b},
		{"B local", b, a},
	} {
		t.Run(tc.name, func(t *testing.T) {
			merged, _ := m.MergeProducts(tc.local, tc.remote)
			require.Len(t, merged, 1)
			assert.Equal(t, a[0], merged[0])
		})
	}
}

func TestMergeProducts_OrderIndependent(t *testing.T) {
	m := New()
	a := []Product{
		{Name: "Rice", Kcal100: 130, CreatedAt: 10},
		{Name: "Egg", Kcal100: 155, Protein100: 13, Portions: []Portion{{Label: "piece", Grams: 50}}},
		{Name: "Milk", Kcal100: 64, Fat100: 3.6},
	}
	b := []Product{
		{Name: "RICE", Kcal100: 130, CreatedAt: 20},
		{Name: "egg", ID: "e1", Kcal100: 155, Protein100: 13},
		{Name: "milk ", Kcal100: 64, SatFat100: 2.1},
	}

	ab, _ := m.MergeProducts(a, b)
	ba, _ := m.MergeProducts(b, a)

	assert.Equal(t, byName(ab), byName(ba))
	assert.Equal(t, int64(20), byName(ab)["rice"].CreatedAt, "newer createdAt breaks score ties")
	assert.Len(t, byName(ab)["egg"].Portions, 1, "portions weigh more than an id")
}

func TestMergeProducts_IntraSideDedupe(t *testing.T) {
	m := New()
	local := []Product{
		{Name: "Oats", Kcal100: 389},
		{Name: " oats", Kcal100: 389, Protein100: 16.9},
		{Name: "OATS"},
		{Name: "Banana", Kcal100: 89},
	}
	remote := []Product{
		{Name: "Banana", Kcal100: 89, Portions: []Portion{{Label: "medium", Grams: 118}}},
		{Name: "banana", Kcal100: 89},
	}

	merged, stats := m.MergeProducts(local, remote)

	assert.Len(t, merged, 2)
	assert.Equal(t, 2, stats.LocalDuplicates)
	assert.Equal(t, 1, stats.RemoteDuplicates)
	assert.Equal(t, 1, stats.AddedFromLocal)
	assert.Equal(t, 0, stats.UpdatedFromLocal)
	assert.Equal(t, 16.9, byName(merged)["oats"].Protein100)
	assert.Len(t, byName(merged)["banana"].Portions, 1)
}

func TestMergeProducts_InvalidNamesDropped(t *testing.T) {
	m := New()
	merged, stats := m.MergeProducts(
		[]Product{{Name: "   ", Kcal100: 100}, {Name: "Tea"}},
		[]Product{{Name: "", ID: "orphan"}},
	)

	require.Len(t, merged, 1)
	assert.Equal(t, "Tea", merged[0].Name)
	assert.Equal(t, 2, stats.InvalidDropped)
}

func TestMergeProducts_EmptySideShortCircuits(t *testing.T) {
	m := New()
	remote := []Product{{Name: "Kefir"}, {Name: "kefir", Kcal100: 41}}

	merged, stats := m.MergeProducts(nil, remote)
	assert.Equal(t, []Product{{Name: "kefir", Kcal100: 41}}, merged)
	assert.Equal(t, 0, stats.AddedFromLocal)
	assert.Equal(t, -1, stats.NetDelta)

	merged, stats = m.MergeProducts(remote, []Product{{Name: ""}})
	assert.Len(t, merged, 1)
	assert.Equal(t, 1, stats.Out)
}

func TestMergeProducts_Counters(t *testing.T) {
	m := New()
	local := []Product{
		{Name: "Apple", Kcal100: 52, Carbs100: 14},
		{Name: "Pear", Kcal100: 57},
	}
	remote := []Product{
		{Name: "apple", Kcal100: 52},
		{Name: "Plum", Kcal100: 46},
	}

	_, stats := m.MergeProducts(local, remote)

	assert.Equal(t, CatalogStats{
		LocalIn:          2,
		RemoteIn:         2,
		AddedFromLocal:   1,
		UpdatedFromLocal: 1,
		Out:              3,
		NetDelta:         1,
	}, stats)
}

func TestMergeProducts_DuplicateIsNotableEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := New(WithLogger(zap.New(core)))

	m.MergeProducts([]Product{{Name: "Tofu"}, {Name: "tofu"}}, nil)
	assert.Equal(t, 1, logs.FilterMessage("duplicate products collapsed").Len())

	m.MergeProducts([]Product{{Name: "Tofu"}}, nil)
	assert.Equal(t, 1, logs.Len(), "plain merges log at debug level")
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "apple", NormalizeName("  Apple "))
	assert.Equal(t, "strasse", NormalizeName("STRASSE"))
	assert.Equal(t, "", NormalizeName("\t"))
}

func TestScore(t *testing.T) {
	full := Product{
		ID:         "p",
		Name:       "Full",
		Kcal100:    1,
		Protein100: 1,
		Sugar100:   1,
		SatFat100:  1,
		Fiber100:   1,
		GI:         1,
		Portions:   []Portion{{Label: "cup", Grams: 240}},
		CreatedAt:  1,
	}
	assert.Equal(t, 11, Score(full))
	assert.Equal(t, 1, Score(Product{Name: "x"}))
	assert.Equal(t, 0, Score(Product{}))
}

func TestMergeProducts_Golden(t *testing.T) {
	m := New()
	local := []Product{
		{Name: "Apple", Kcal100: 52},
		{Name: " Oats ", Kcal100: 389, Protein100: 16.9, Carbs100: 66.3, Fat100: 6.9, Fiber100: 10.6},
		{Name: ""},
	}
	remote := []Product{
		{ID: "x", Name: "apple"},
		{ID: "r2", Name: "Rice", Kcal100: 130, CreatedAt: 100},
	}

	merged, _ := m.MergeProducts(local, remote)
	out, err := json.MarshalIndent(merged, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "catalog_merge", append(out, '\n'))
}

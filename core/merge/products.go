package merge

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// CatalogStats counts what a catalog merge did. It is diagnostic only.
type CatalogStats struct {
	LocalIn          int `json:"local_in"`
	RemoteIn         int `json:"remote_in"`
	InvalidDropped   int `json:"invalid_dropped"`
	LocalDuplicates  int `json:"local_duplicates"`
	RemoteDuplicates int `json:"remote_duplicates"`
	AddedFromLocal   int `json:"added_from_local"`
	UpdatedFromLocal int `json:"updated_from_local"`
	Out              int `json:"out"`
	// NetDelta is the merged size minus the remote input size.
	NetDelta int `json:"net_delta"`
}

// NormalizeName returns the identity key of a product: the trimmed, case-folded name.
func NormalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Score rates how complete a product entry is. Higher is better.
func Score(p Product) int {
	score := 0
	for _, ok := range []bool{
		strings.TrimSpace(p.ID) != "",
		NormalizeName(p.Name) != "",
		p.Kcal100 != 0,
		p.Protein100 != 0,
		p.Carbs100 != 0 || p.Sugar100 != 0,
		p.Fat100 != 0 || p.SatFat100 != 0,
		p.Fiber100 != 0,
		p.GI != 0,
		p.CreatedAt != 0,
	} {
		if ok {
			score++
		}
	}
	if len(p.Portions) > 0 {
		score += 2
	}
	return score
}

// richness counts non-zero nutrition facts.
func richness(p Product) int {
	n := 0
	for _, v := range []float64{p.Kcal100, p.Protein100, p.Carbs100, p.Sugar100, p.Fat100, p.SatFat100, p.Fiber100, p.GI} {
		if v != 0 {
			n++
		}
	}
	return n
}

// Better reports whether a should be kept over b when both share a name.
//
// Order: higher Score, then newer CreatedAt, then more nutrition facts, then the
// textual form as a last resort. This is a total order on content, so the choice
// never depends on argument or input order.
func Better(a, b Product) bool {
	if sa, sb := Score(a), Score(b); sa != sb {
		return sa > sb
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	if ra, rb := richness(a), richness(b); ra != rb {
		return ra > rb
	}
	return fmt.Sprintf("%+v", a) > fmt.Sprintf("%+v", b)
}

// MergeProducts unions two catalogs by normalized name.
//
// Each side is first collapsed to its best entry per name and stripped of unnamed
// entries. The remote set is the base; a local entry is added when its name is new
// and replaces the remote entry when it is Better.
func (m *Merger) MergeProducts(local, remote []Product) ([]Product, CatalogStats) {
	stats := CatalogStats{LocalIn: len(local), RemoteIn: len(remote)}

	l, lDupes, lInvalid := dedupeProducts(local)
	r, rDupes, rInvalid := dedupeProducts(remote)
	stats.LocalDuplicates = lDupes
	stats.RemoteDuplicates = rDupes
	stats.InvalidDropped = lInvalid + rInvalid

	var merged []Product
	switch {
	case len(l) == 0:
		merged = r
	case len(r) == 0:
		merged = l
	default:
		merged = make([]Product, len(r), len(r)+len(l))
		copy(merged, r)
		idx := make(map[string]int, len(r))
		for i, p := range merged {
			idx[NormalizeName(p.Name)] = i
		}
		for _, p := range l {
			key := NormalizeName(p.Name)
			i, ok := idx[key]
			switch {
			case !ok:
				idx[key] = len(merged)
				merged = append(merged, p)
				stats.AddedFromLocal++
			case Better(p, merged[i]):
				merged[i] = p
				stats.UpdatedFromLocal++
			}
		}
	}

	stats.Out = len(merged)
	stats.NetDelta = stats.Out - stats.RemoteIn
	m.logCatalog(stats)
	return merged, stats
}

func (m *Merger) logCatalog(s CatalogStats) {
	fields := []zap.Field{
		zap.Int("local_in", s.LocalIn),
		zap.Int("remote_in", s.RemoteIn),
		zap.Int("invalid_dropped", s.InvalidDropped),
		zap.Int("local_duplicates", s.LocalDuplicates),
		zap.Int("remote_duplicates", s.RemoteDuplicates),
		zap.Int("added_from_local", s.AddedFromLocal),
		zap.Int("updated_from_local", s.UpdatedFromLocal),
		zap.Int("out", s.Out),
		zap.Int("net_delta", s.NetDelta),
	}
	if s.LocalDuplicates > 0 || s.RemoteDuplicates > 0 {
		m.log.Info("duplicate products collapsed", fields...)
		return
	}
	m.log.Debug("product catalogs merged", fields...)
}

// dedupeProducts keeps the best entry per normalized name, in first-seen order.
func dedupeProducts(products []Product) (out []Product, dupes, invalid int) {
	idx := make(map[string]int, len(products))
	out = make([]Product, 0, len(products))
	for _, p := range products {
		key := NormalizeName(p.Name)
		if key == "" {
			invalid++
			continue
		}
		i, ok := idx[key]
		if !ok {
			idx[key] = len(out)
			out = append(out, p)
			continue
		}
		dupes++
		if Better(p, out[i]) {
			out[i] = p
		}
	}
	return out, dupes, invalid
}

// SameCatalog reports whether two catalogs hold the same entries in the same order.
func SameCatalog(a, b []Product) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if fmt.Sprintf("%+v", a[i]) != fmt.Sprintf("%+v", b[i]) {
			return false
		}
	}
	return true
}

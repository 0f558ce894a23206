package merge

import (
	"cmp"
	"slices"

	"go.uber.org/zap"
)

// Recency compares the updatedAt of the two replicas being merged.
type Recency struct {
	Local  int64
	Remote int64
}

// LocalNewer reports local >= remote. Ties favor local.
func (r Recency) LocalNewer() bool { return r.Local >= r.Remote }

// LocalAhead reports local > remote.
func (r Recency) LocalAhead() bool { return r.Local > r.Remote }

// RemoteAhead reports remote > local.
func (r Recency) RemoteAhead() bool { return r.Remote > r.Local }

// MergeMeals reconciles two meal lists keyed by meal id.
//
// A meal missing on the strictly newer side was deleted there and is dropped.
// A meal missing on the other side simply has not synced yet and is kept. Meals on
// both sides merge their items. The result is sorted by time.
func (m *Merger) MergeMeals(local, remote []Meal, rec Recency) []Meal {
	localIdx, localOrder := indexMeals(local)
	remoteIdx, remoteOrder := indexMeals(remote)

	merged := make([]Meal, 0, len(localOrder)+len(remoteOrder))
	dropped := 0

	for _, id := range localOrder {
		lm := localIdx[id]
		if rm, ok := remoteIdx[id]; ok {
			merged = append(merged, mergeMeal(lm, rm, rec.LocalNewer()))
			continue
		}
		if rec.RemoteAhead() {
			dropped++
			continue
		}
		merged = append(merged, lm)
	}

	for _, id := range remoteOrder {
		if _, ok := localIdx[id]; ok {
			continue
		}
		if rec.LocalAhead() {
			dropped++
			continue
		}
		merged = append(merged, remoteIdx[id])
	}

	if dropped > 0 {
		m.log.Debug("meals treated as deleted on newer replica", zap.Int("count", dropped))
	}

	sortMeals(merged)
	return merged
}

// mergeMeal combines one meal present on both sides. The newer copy supplies the
// meal attributes and wins for shared item ids; items unique to either side stay.
func mergeMeal(local, remote Meal, localNewer bool) Meal {
	newer, older := remote, local
	if localNewer {
		newer, older = local, remote
	}

	seen := make(map[string]struct{}, len(newer.Items)+len(older.Items))
	items := make([]Item, 0, len(newer.Items)+len(older.Items))
	for _, list := range [][]Item{newer.Items, older.Items} {
		for _, it := range list {
			if _, ok := seen[it.ID]; ok {
				continue
			}
			seen[it.ID] = struct{}{}
			items = append(items, it)
		}
	}

	merged := newer
	merged.Items = items
	return merged
}

// indexMeals keys meals by id, keeping the first occurrence and skipping meals
// without an id. order preserves input order for deterministic output.
func indexMeals(meals []Meal) (idx map[string]Meal, order []string) {
	idx = make(map[string]Meal, len(meals))
	order = make([]string, 0, len(meals))
	for _, meal := range meals {
		if meal.ID == "" {
			continue
		}
		if _, ok := idx[meal.ID]; ok {
			continue
		}
		meal.Items = cleanItems(meal.Items)
		idx[meal.ID] = meal
		order = append(order, meal.ID)
	}
	return idx, order
}

// cleanItems copies items, dropping those without an id and repeated ids.
func cleanItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

func sortMeals(meals []Meal) {
	slices.SortStableFunc(meals, func(a, b Meal) int {
		if c := cmp.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

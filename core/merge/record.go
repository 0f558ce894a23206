package merge

import (
	"reflect"

	"go.uber.org/zap"
)

// DayResult is the outcome of merging two snapshots of one day.
type DayResult struct {
	// Record is the merged record. For a no-op it is the local snapshot unchanged.
	Record DayRecord

	// NoOp is set when both snapshots are identical once volatile fields are
	// ignored. Callers must skip persistence for a no-op.
	NoOp bool
}

// MergeDay reconciles the local and remote snapshot of the same date.
//
// Both records must carry the same Date; callers reject records without one
// before merging. MergeDay never fails and never mutates its inputs.
func (m *Merger) MergeDay(local, remote DayRecord) DayResult {
	if SameDay(local, remote) {
		m.log.Debug("day snapshots identical", zap.String("date", local.Date))
		return DayResult{Record: local, NoOp: true}
	}

	rec := Recency{Local: local.UpdatedAt, Remote: remote.UpdatedAt}
	localNewer := rec.LocalNewer()

	merged := DayRecord{
		Date:      local.Date,
		ReplicaID: local.ReplicaID,
		Steps:     ResolveCounter(local.Steps, remote.Steps),
		WaterMl:   ResolveCounter(local.WaterMl, remote.WaterMl),

		WeightMorning: Resolve(local.WeightMorning, remote.WeightMorning, localNewer, PolicyClearable),
		SleepStart:    Resolve(local.SleepStart, remote.SleepStart, localNewer, PolicyClearable),
		SleepEnd:      Resolve(local.SleepEnd, remote.SleepEnd, localNewer, PolicyClearable),
		CycleDay:      Resolve(local.CycleDay, remote.CycleDay, localNewer, PolicyClearable),
		Comment:       Resolve(local.Comment, remote.Comment, localNewer, PolicyLWW),
	}
	if merged.Date == "" {
		merged.Date = remote.Date
	}
	merged.DayScore, merged.DayScoreManual = ResolveOverride(
		local.DayScore, remote.DayScore,
		local.DayScoreManual, remote.DayScoreManual,
		localNewer,
	)

	merged.Meals = m.MergeMeals(local.Meals, remote.Meals, rec)
	merged.Trainings = m.MergeTrainings(local.Trainings, remote.Trainings, localNewer)
	merged.UpdatedAt = max(local.UpdatedAt, remote.UpdatedAt, m.now())

	m.log.Debug("day snapshots merged",
		zap.String("date", merged.Date),
		zap.Bool("local_newer", localNewer),
		zap.Int64("local_updated_at", local.UpdatedAt),
		zap.Int64("remote_updated_at", remote.UpdatedAt),
		zap.Int("meals", len(merged.Meals)),
	)

	return DayResult{Record: merged}
}

// SameDay reports whether two snapshots carry the same user data, ignoring
// updatedAt and the replica id.
func SameDay(a, b DayRecord) bool {
	return reflect.DeepEqual(canonicalDay(a), canonicalDay(b))
}

// canonicalDay strips volatile fields and irons out representation differences
// that carry no meaning: nil versus empty lists and short training arrays.
func canonicalDay(r DayRecord) DayRecord {
	r.UpdatedAt = 0
	r.ReplicaID = ""

	meals := make([]Meal, len(r.Meals))
	for i, meal := range r.Meals {
		if meal.Items == nil {
			meal.Items = []Item{}
		}
		meals[i] = meal
	}
	r.Meals = meals
	r.Trainings = normalizeSlots(r.Trainings)
	return r
}

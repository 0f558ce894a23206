package merge

import "go.uber.org/zap"

// MergeTrainings reconciles the three training slots position by position.
//
// The newer side's slot is picked, except that a slot with recorded minutes is never
// replaced by an empty one. Ratings are then filled from the losing slot wherever
// the winner has none. The result always has SlotCount entries.
func (m *Merger) MergeTrainings(local, remote []TrainingSlot, localNewer bool) []TrainingSlot {
	l := normalizeSlots(local)
	r := normalizeSlots(remote)

	merged := make([]TrainingSlot, SlotCount)
	for i := range merged {
		var rescued bool
		merged[i], rescued = mergeSlot(l[i], r[i], localNewer)
		if rescued {
			m.log.Debug("training slot kept older non-empty zones",
				zap.Int("slot", i),
				zap.Bool("local_newer", localNewer),
			)
		}
	}
	return merged
}

// mergeSlot returns the merged slot and whether recency was overridden.
func mergeSlot(local, remote TrainingSlot, localNewer bool) (TrainingSlot, bool) {
	winner, loser := remote, local
	if localNewer {
		winner, loser = local, remote
	}

	rescued := false
	if loser.Minutes() > 0 && winner.Minutes() == 0 {
		winner, loser = loser, winner
		rescued = true
	}

	merged := winner
	merged.Mood = firstPresent(winner.Mood, loser.Mood)
	merged.Wellbeing = firstPresent(winner.Wellbeing, loser.Wellbeing)
	merged.Stress = firstPresent(winner.Stress, loser.Stress)
	return merged, rescued
}

func firstPresent(a, b Field[int]) Field[int] {
	if a.IsPresent() {
		return a
	}
	if b.IsPresent() {
		return b
	}
	return Field[int]{}
}

// normalizeSlots pads to SlotCount with empty slots and drops extras. Legacy
// rating keys are already folded into the canonical fields by the decoder; here
// negative minutes clamp to zero and null ratings count as unset.
func normalizeSlots(slots []TrainingSlot) []TrainingSlot {
	out := make([]TrainingSlot, SlotCount)
	for i := 0; i < SlotCount && i < len(slots); i++ {
		s := slots[i]
		for z := range s.Zones {
			s.Zones[z] = max(s.Zones[z], 0)
		}
		s.Mood = s.Mood.NullAsAbsent()
		s.Wellbeing = s.Wellbeing.NullAsAbsent()
		s.Stress = s.Stress.NullAsAbsent()
		out[i] = s
	}
	return out
}

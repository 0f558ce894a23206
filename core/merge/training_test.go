package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTrainings_ZeroVectorProtection(t *testing.T) {
	m := New()

	tests := []struct {
		name       string
		local      TrainingSlot
		remote     TrainingSlot
		localNewer bool
		wantZones  [ZoneCount]int
	}{
		{
			name:       "Empty newer local keeps older remote",
			local:      TrainingSlot{},
			remote:     TrainingSlot{Zones: [4]int{10, 0, 0, 0}},
			localNewer: true,
			wantZones:  [4]int{10, 0, 0, 0},
		},
		{
			name:       "Empty newer remote keeps older local",
			local:      TrainingSlot{Zones: [4]int{0, 25, 5, 0}},
			remote:     TrainingSlot{},
			localNewer: false,
			wantZones:  [4]int{0, 25, 5, 0},
		},
		{
			name:       "Both recorded newer wins",
			local:      TrainingSlot{Zones: [4]int{1, 1, 1, 1}},
			remote:     TrainingSlot{Zones: [4]int{30, 0, 0, 0}},
			localNewer: true,
			wantZones:  [4]int{1, 1, 1, 1},
		},
		{
			name:       "Both recorded remote newer",
			local:      TrainingSlot{Zones: [4]int{1, 1, 1, 1}},
			remote:     TrainingSlot{Zones: [4]int{30, 0, 0, 0}},
			localNewer: false,
			wantZones:  [4]int{30, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MergeTrainings([]TrainingSlot{tt.local}, []TrainingSlot{tt.remote}, tt.localNewer)
			require.Len(t, got, SlotCount)
			assert.Equal(t, tt.wantZones, got[0].Zones)
			assert.Equal(t, TrainingSlot{}, got[1])
			assert.Equal(t, TrainingSlot{}, got[2])
		})
	}
}

func TestMergeTrainings_RatingsFallBackToLoser(t *testing.T) {
	m := New()
	local := []TrainingSlot{{
		Zones: [4]int{20, 10, 0, 0},
		Kind:  "run",
		Mood:  Some(4),
	}}
	remote := []TrainingSlot{{
		Zones:     [4]int{5, 0, 0, 0},
		Kind:      "walk",
		Wellbeing: Some(3),
		Stress:    Some(2),
		Mood:      Some(1),
	}}

	got := m.MergeTrainings(local, remote, true)

	assert.Equal(t, [4]int{20, 10, 0, 0}, got[0].Zones)
	assert.Equal(t, "run", got[0].Kind)
	assert.Equal(t, Some(4), got[0].Mood, "winner's own rating is kept")
	assert.Equal(t, Some(3), got[0].Wellbeing, "loser's rating survives")
	assert.Equal(t, Some(2), got[0].Stress)
}

func TestMergeTrainings_RescuedSlotStillTakesRatings(t *testing.T) {
	m := New()
	local := []TrainingSlot{{Mood: Some(5)}}
	remote := []TrainingSlot{{Zones: [4]int{0, 0, 40, 0}, Kind: "bike"}}

	got := m.MergeTrainings(local, remote, true)

	assert.Equal(t, [4]int{0, 0, 40, 0}, got[0].Zones)
	assert.Equal(t, "bike", got[0].Kind)
	assert.Equal(t, Some(5), got[0].Mood)
}

func TestMergeTrainings_PadsAndTruncates(t *testing.T) {
	m := New()
	long := []TrainingSlot{{}, {}, {}, {Zones: [4]int{9, 9, 9, 9}}}

	got := m.MergeTrainings(nil, long, false)
	assert.Len(t, got, SlotCount)

	got = m.MergeTrainings(nil, nil, true)
	assert.Equal(t, make([]TrainingSlot, SlotCount), got)
}

func TestMergeTrainings_NegativeMinutesClamp(t *testing.T) {
	m := New()
	got := m.MergeTrainings([]TrainingSlot{{Zones: [4]int{-5, 0, 0, 0}}}, []TrainingSlot{{Zones: [4]int{3, 0, 0, 0}}}, true)
	assert.Equal(t, [4]int{3, 0, 0, 0}, got[0].Zones)
}

func TestTrainingSlot_LegacyAliases(t *testing.T) {
	rec, err := DecodeDayRecord([]byte(`{
		"date": "2025-01-01",
		"trainings": [
			{"zones": [10, "5", -3], "type": "swim", "moodScore": 4, "feeling": 3, "stressLevel": null},
			"garbage",
			{"z": [1, 2, 3, 4, 5], "mood": 2, "wellbeing": 5}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, rec.Trainings, 3)

	legacy := rec.Trainings[0]
	assert.Equal(t, [4]int{10, 5, 0, 0}, legacy.Zones)
	assert.Equal(t, "swim", legacy.Kind)
	assert.Equal(t, Some(4), legacy.Mood)
	assert.Equal(t, Some(3), legacy.Wellbeing)
	assert.True(t, legacy.Stress.IsZero())

	assert.Equal(t, TrainingSlot{}, rec.Trainings[1])
	assert.Equal(t, [4]int{1, 2, 3, 4}, rec.Trainings[2].Zones)

	current := []TrainingSlot{{Zones: [4]int{10, 5, 0, 0}, Kind: "swim", Stress: Some(1)}}
	got := New().MergeTrainings(rec.Trainings, current, true)
	assert.Equal(t, Some(4), got[0].Mood)
	assert.Equal(t, Some(1), got[0].Stress)
}

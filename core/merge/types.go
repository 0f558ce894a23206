package merge

// SlotCount is the fixed number of training slots on a day.
const SlotCount = 3

// ZoneCount is the number of heart-rate zones tracked per training slot.
const ZoneCount = 4

// DayRecord is one user's activity log for a calendar date.
// Date is the identity and never changes across merges.
type DayRecord struct {
	// Date is the calendar date, e.g. "2025-01-01".
	Date string `json:"date"`

	// UpdatedAt is the replica's monotonic clock value in milliseconds.
	// It arbitrates last-writer-wins fields.
	UpdatedAt int64 `json:"updatedAt"`

	// ReplicaID names the device that last wrote the record. Volatile.
	ReplicaID string `json:"replicaId,omitempty"`

	// Steps and WaterMl are cumulative daily totals.
	Steps   int `json:"steps"`
	WaterMl int `json:"waterMl"`

	WeightMorning Field[float64] `json:"weightMorning,omitzero"`
	SleepStart    Field[string]  `json:"sleepStart,omitzero"`
	SleepEnd      Field[string]  `json:"sleepEnd,omitzero"`
	CycleDay      Field[int]     `json:"cycleDay,omitzero"`

	// DayScore is computed by the app unless DayScoreManual pins a user value.
	DayScore       Field[int] `json:"dayScore,omitzero"`
	DayScoreManual bool       `json:"dayScoreManual,omitempty"`

	Comment Field[string] `json:"comment,omitzero"`

	Meals     []Meal         `json:"meals"`
	Trainings []TrainingSlot `json:"trainings"`
}

// Valid reports whether the record carries its identity.
func (r DayRecord) Valid() bool {
	return r.Date != ""
}

// Meal is a group of eaten items at a point in the day.
type Meal struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Name  string `json:"name,omitempty"`
	Items []Item `json:"items"`
}

// Item is one eaten product inside a meal. Items merge atomically.
type Item struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Grams   float64 `json:"grams,omitempty"`
	Kcal    float64 `json:"kcal,omitempty"`
	Protein float64 `json:"protein,omitempty"`
	Carbs   float64 `json:"carbs,omitempty"`
	Fat     float64 `json:"fat,omitempty"`
}

// TrainingSlot is one of the three fixed training positions of a day.
type TrainingSlot struct {
	// Zones holds minutes spent in each heart-rate zone.
	Zones [ZoneCount]int `json:"z"`
	Kind  string         `json:"kind,omitempty"`

	Mood      Field[int] `json:"mood,omitzero"`
	Wellbeing Field[int] `json:"wellbeing,omitzero"`
	Stress    Field[int] `json:"stress,omitzero"`
}

// Minutes returns the total recorded minutes across all zones.
func (s TrainingSlot) Minutes() int {
	total := 0
	for _, m := range s.Zones {
		total += m
	}
	return total
}

// Product is a catalog entry with nutrition facts per 100 units.
// Its identity is NormalizeName(Name), not ID.
type Product struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Kcal100    float64   `json:"kcal100,omitempty"`
	Protein100 float64   `json:"protein100,omitempty"`
	Carbs100   float64   `json:"carbs100,omitempty"`
	Sugar100   float64   `json:"sugar100,omitempty"`
	Fat100     float64   `json:"fat100,omitempty"`
	SatFat100  float64   `json:"satFat100,omitempty"`
	Fiber100   float64   `json:"fiber100,omitempty"`
	GI         float64   `json:"gi,omitempty"`
	Portions   []Portion `json:"portions,omitempty"`
	CreatedAt  int64     `json:"createdAt,omitempty"`
}

// Portion is a named serving size of a product.
type Portion struct {
	Label string  `json:"label"`
	Grams float64 `json:"grams"`
}

package merge

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"daysync/core/utils"
)

// Older app versions wrote some attributes under different keys. The first key of
// each list is canonical.
var (
	keysWater     = []string{"waterMl", "water"}
	keysWeight    = []string{"weightMorning", "weight"}
	keysZones     = []string{"z", "zones", "minutes"}
	keysKind      = []string{"kind", "type"}
	keysMood      = []string{"mood", "moodScore"}
	keysWellbeing = []string{"wellbeing", "wellBeing", "feeling"}
	keysStress    = []string{"stress", "stressLevel"}
)

// DecodeDayRecord parses a replica snapshot. Wrong-typed attributes are coerced to
// a safe default instead of failing; only malformed JSON returns an error.
func DecodeDayRecord(b []byte) (DayRecord, error) {
	raw, err := decodeLoose(b)
	if err != nil {
		return DayRecord{}, err
	}
	return dayFromMap(utils.ToMap(raw)), nil
}

// DecodeProducts parses a product list. A payload that is not a list yields an
// empty catalog; entries that are not objects are skipped.
func DecodeProducts(b []byte) ([]Product, error) {
	raw, err := decodeLoose(b)
	if err != nil {
		return nil, err
	}
	list := utils.ToSlice(raw)
	products := make([]Product, 0, len(list))
	for _, v := range list {
		m := utils.ToMap(v)
		if m == nil {
			continue
		}
		products = append(products, productFromMap(m))
	}
	return products, nil
}

// UnmarshalJSON decodes through the lenient path so old snapshots still load.
func (r *DayRecord) UnmarshalJSON(b []byte) error {
	rec, err := DecodeDayRecord(b)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// UnmarshalJSON resolves legacy key aliases.
func (s *TrainingSlot) UnmarshalJSON(b []byte) error {
	raw, err := decodeLoose(b)
	if err != nil {
		return err
	}
	*s = slotFromMap(utils.ToMap(raw))
	return nil
}

// UnmarshalJSON coerces loosely typed nutrition values.
func (p *Product) UnmarshalJSON(b []byte) error {
	raw, err := decodeLoose(b)
	if err != nil {
		return err
	}
	*p = productFromMap(utils.ToMap(raw))
	return nil
}

func decodeLoose(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func dayFromMap(m map[string]any) DayRecord {
	if m == nil {
		return DayRecord{}
	}
	rec := DayRecord{
		Date:           strings.TrimSpace(utils.ToString(m["date"])),
		UpdatedAt:      timestamp(m["updatedAt"]),
		ReplicaID:      utils.ToString(m["replicaId"]),
		Steps:          counter(m, "steps"),
		WaterMl:        counter(m, keysWater...),
		WeightMorning:  floatField(m, keysWeight...),
		SleepStart:     stringField(m, "sleepStart"),
		SleepEnd:       stringField(m, "sleepEnd"),
		CycleDay:       intField(m, "cycleDay"),
		DayScore:       intField(m, "dayScore").NullAsAbsent(),
		DayScoreManual: utils.ToBool(m["dayScoreManual"]),
		Comment:        stringField(m, "comment").NullAsAbsent(),
		Meals:          []Meal{},
		Trainings:      []TrainingSlot{},
	}

	for _, v := range utils.ToSlice(m["meals"]) {
		meal, ok := mealFromMap(utils.ToMap(v))
		if ok {
			rec.Meals = append(rec.Meals, meal)
		}
	}
	for _, v := range utils.ToSlice(m["trainings"]) {
		rec.Trainings = append(rec.Trainings, slotFromMap(utils.ToMap(v)))
	}
	return rec
}

func mealFromMap(m map[string]any) (Meal, bool) {
	id := utils.ToString(m["id"])
	if m == nil || id == "" {
		return Meal{}, false
	}
	meal := Meal{
		ID:    id,
		Time:  utils.ToString(m["time"]),
		Name:  utils.ToString(m["name"]),
		Items: []Item{},
	}
	for _, v := range utils.ToSlice(m["items"]) {
		im := utils.ToMap(v)
		itemID := utils.ToString(im["id"])
		if itemID == "" {
			continue
		}
		meal.Items = append(meal.Items, Item{
			ID:      itemID,
			Name:    utils.ToString(im["name"]),
			Grams:   utils.ToFloat(im["grams"]),
			Kcal:    utils.ToFloat(im["kcal"]),
			Protein: utils.ToFloat(im["protein"]),
			Carbs:   utils.ToFloat(im["carbs"]),
			Fat:     utils.ToFloat(im["fat"]),
		})
	}
	return meal, true
}

func slotFromMap(m map[string]any) TrainingSlot {
	var slot TrainingSlot
	if m == nil {
		return slot
	}
	zones := utils.ToSlice(lookup(m, keysZones...))
	for i := 0; i < ZoneCount && i < len(zones); i++ {
		slot.Zones[i] = max(utils.ToInt(zones[i]), 0)
	}
	slot.Kind = utils.ToString(lookup(m, keysKind...))
	slot.Mood = intField(m, keysMood...).NullAsAbsent()
	slot.Wellbeing = intField(m, keysWellbeing...).NullAsAbsent()
	slot.Stress = intField(m, keysStress...).NullAsAbsent()
	return slot
}

func productFromMap(m map[string]any) Product {
	if m == nil {
		return Product{}
	}
	p := Product{
		ID:         utils.ToString(m["id"]),
		Name:       utils.ToString(m["name"]),
		Kcal100:    utils.ToFloat(m["kcal100"]),
		Protein100: utils.ToFloat(m["protein100"]),
		Carbs100:   utils.ToFloat(m["carbs100"]),
		Sugar100:   utils.ToFloat(m["sugar100"]),
		Fat100:     utils.ToFloat(m["fat100"]),
		SatFat100:  utils.ToFloat(m["satFat100"]),
		Fiber100:   utils.ToFloat(m["fiber100"]),
		GI:         utils.ToFloat(m["gi"]),
		CreatedAt:  timestamp(m["createdAt"]),
	}
	for _, v := range utils.ToSlice(m["portions"]) {
		pm := utils.ToMap(v)
		if pm == nil {
			continue
		}
		p.Portions = append(p.Portions, Portion{
			Label: utils.ToString(pm["label"]),
			Grams: utils.ToFloat(pm["grams"]),
		})
	}
	return p
}

// lookup returns the value of the first key present in m.
func lookup(m map[string]any, keys ...string) any {
	v, _ := has(m, keys...)
	return v
}

func has(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func counter(m map[string]any, keys ...string) int {
	return max(utils.ToInt(lookup(m, keys...)), 0)
}

func intField(m map[string]any, keys ...string) Field[int] {
	v, ok := has(m, keys...)
	switch {
	case !ok:
		return Field[int]{}
	case v == nil:
		return Clear[int]()
	}
	if i, ok := utils.ParseInt(v); ok {
		return Some(i)
	}
	return Field[int]{}
}

func floatField(m map[string]any, keys ...string) Field[float64] {
	v, ok := has(m, keys...)
	switch {
	case !ok:
		return Field[float64]{}
	case v == nil:
		return Clear[float64]()
	}
	if f, ok := utils.ParseFloat(v); ok {
		return Some(f)
	}
	return Field[float64]{}
}

func stringField(m map[string]any, keys ...string) Field[string] {
	v, ok := has(m, keys...)
	switch {
	case !ok:
		return Field[string]{}
	case v == nil:
		return Clear[string]()
	}
	if s, ok := v.(string); ok {
		return Some(s)
	}
	return Field[string]{}
}

// timestamp accepts epoch milliseconds or an RFC 3339 string.
func timestamp(v any) int64 {
	if s, ok := v.(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s)); err == nil {
			return t.UnixMilli()
		}
	}
	return max(utils.ToInt64(v), 0)
}

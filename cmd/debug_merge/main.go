package main

import (
	"encoding/json"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"daysync/core/merge"

	"go.uber.org/zap"
)

// Prints each top-level field of two day snapshots next to the merged value.
// Usage: debug_merge <local.json> <remote.json>
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <local.json> <remote.json>", os.Args[0])
	}

	local := load(os.Args[1])
	remote := load(os.Args[2])

	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	res := merge.New(merge.WithLogger(l)).MergeDay(local, remote)

	fmt.Printf("=== %s (local updatedAt=%d, remote updatedAt=%d) ===\n", local.Date, local.UpdatedAt, remote.UpdatedAt)
	if res.NoOp {
		fmt.Println("NO-OP: snapshots are identical once volatile fields are ignored")
	}

	lm, rm, mm := fields(local), fields(remote), fields(res.Record)
	keys := slices.Sorted(maps.Keys(mm))
	for k := range lm {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	for k := range rm {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tLOCAL\tREMOTE\tMERGED\tFROM")
	for _, k := range keys {
		lv, rv, mv := lm[k], rm[k], mm[k]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", k, show(lv), show(rv), show(mv), origin(lv, rv, mv))
	}
	_ = w.Flush()
}

func load(path string) merge.DayRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	rec, err := merge.DecodeDayRecord(data)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	return rec
}

// fields returns the encoded form of each top-level field. Absent fields are missing.
func fields(rec merge.DayRecord) map[string]string {
	data, err := json.Marshal(rec)
	if err != nil {
		log.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Fatal(err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = string(v)
	}
	return out
}

func show(v string) string {
	if v == "" {
		return "-"
	}
	if len(v) > 40 {
		return v[:37] + "..."
	}
	return v
}

func origin(l, r, m string) string {
	switch {
	case m == l && m == r:
		return "same"
	case m == l:
		return "local"
	case m == r:
		return "remote"
	default:
		return "merged"
	}
}

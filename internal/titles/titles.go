// Package titles assigns sequential "Session N" display titles to training sessions.
package titles

import (
	"sort"
	"strconv"

	"github.com/preston-bernstein/team-ledger/internal/domain/sessions"
)

const prefix = "Session "

// Format renders the title for the n-th session (1-based).
func Format(n int) string {
	return prefix + strconv.Itoa(n)
}

// Assign titles a new session by counting the existing sessions whose
// (date, startTime) is strictly earlier.
func Assign(existing []sessions.Session, date, startTime string) string {
	count := 0
	for _, s := range existing {
		if s.Before(date, startTime) {
			count++
		}
	}
	return Format(count + 1)
}

// AssignBatch titles each untitled input in chronological order, counting the
// stored sessions plus the batch members titled before it. Inputs that already
// carry a title keep it. The returned slice preserves input order.
func AssignBatch(existing []sessions.Session, batch []sessions.Input) []sessions.Input {
	out := make([]sessions.Input, len(batch))
	copy(out, batch)

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		x, y := out[order[a]], out[order[b]]
		if x.Date != y.Date {
			return x.Date < y.Date
		}
		return x.StartTime < y.StartTime
	})

	seen := make([]sessions.Session, len(existing), len(existing)+len(out))
	copy(seen, existing)
	for _, i := range order {
		if out[i].Title == "" {
			out[i].Title = Assign(seen, out[i].Date, out[i].StartTime)
		}
		seen = append(seen, sessions.Session{Date: out[i].Date, StartTime: out[i].StartTime})
	}
	return out
}

// Renumber sets every title to "Session <rank>" where rank follows
// (date, startTime), ties broken by createdAt then id. Records keep their
// input order; the count reports how many titles changed.
func Renumber(all []sessions.Session) ([]sessions.Session, int) {
	out := make([]sessions.Session, len(all))
	copy(out, all)

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return less(out[order[a]], out[order[b]])
	})

	changed := 0
	for rank, i := range order {
		want := Format(rank + 1)
		if out[i].Title != want {
			out[i].Title = want
			changed++
		}
	}
	return out, changed
}

func less(a, b sessions.Session) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	if a.StartTime != b.StartTime {
		return a.StartTime < b.StartTime
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

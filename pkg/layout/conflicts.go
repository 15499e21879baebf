package layout

import (
	"sort"

	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/rdleal/intervalst/interval"
)

// Conflict is a pair of events whose time ranges overlap. First precedes Second
// in timeline order.
type Conflict struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

type span struct {
	start int
	end   int
}

// Conflicts lists every pair of events of one day whose half-open time ranges
// [start, end) intersect. Events touching at a boundary do not conflict.
func Conflicts(events []schedule.Event) ([]Conflict, error) {
	items, err := sortByTimeline(events)
	if err != nil {
		return nil, err
	}

	// The tree stores closed intervals and keeps one value per distinct interval,
	// so ids are grouped per span and widened by one minute; candidates are then
	// filtered with the exact half-open check.
	tree := interval.NewSearchTree[[]int](func(x, y int) int { return x - y })
	bySpan := make(map[span][]int)
	for i, item := range items {
		s := span{start: item.start, end: item.end}
		bySpan[s] = append(bySpan[s], i)
	}
	for s, indexes := range bySpan {
		if err := tree.Insert(s.start, s.end+1, indexes); err != nil {
			return nil, err
		}
	}

	var pairs [][2]int
	for i, item := range items {
		candidates, ok := tree.AllIntersections(item.start, item.end+1)
		if !ok {
			continue
		}
		for _, indexes := range candidates {
			for _, j := range indexes {
				if j > i && overlaps(item, items[j]) {
					pairs = append(pairs, [2]int{i, j})
				}
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] != pairs[b][0] {
			return pairs[a][0] < pairs[b][0]
		}
		return pairs[a][1] < pairs[b][1]
	})

	conflicts := make([]Conflict, 0, len(pairs))
	for _, p := range pairs {
		conflicts = append(conflicts, Conflict{First: items[p[0]].event.Id, Second: items[p[1]].event.Id})
	}
	return conflicts, nil
}

func overlaps(a, b timed) bool {
	return a.start < b.end && b.start < a.end
}

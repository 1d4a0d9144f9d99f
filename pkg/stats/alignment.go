package stats

import (
	"cmp"
	"slices"

	"github.com/agentstation/councilvotes/pkg/constants"
	"github.com/agentstation/councilvotes/pkg/council"
)

// Pair is the agreement record of two distinct members. A is always the
// member with the lower ID.
type Pair struct {
	MemberAID  int     `json:"member_a_id"`
	MemberA    string  `json:"member_a"`
	MemberBID  int     `json:"member_b_id"`
	MemberB    string  `json:"member_b"`
	Shared     int     `json:"shared_votes"`
	Agreements int     `json:"agreements"`
	Rate       float64 `json:"agreement_rate"`
}

// Alignment is every pair with at least one shared comparable vote, most
// aligned first.
type Alignment struct {
	Pairs        []Pair `json:"pairs"`
	MostAligned  []Pair `json:"most_aligned"`
	LeastAligned []Pair `json:"least_aligned"`
}

// Lookup returns the pair of two members in either order.
func (a *Alignment) Lookup(x, y int) (Pair, bool) {
	if x > y {
		x, y = y, x
	}
	for _, p := range a.Pairs {
		if p.MemberAID == x && p.MemberBID == y {
			return p, true
		}
	}
	return Pair{}, false
}

type pairKey struct{ a, b int }

type side struct {
	id     int
	choice string
}

// ComputeAlignment counts, for each pair of members, the votes on which both
// cast an aye or nay and how many of those agree. Members must have IDs.
func ComputeAlignment(ds *council.Dataset) *Alignment {
	ids := make(map[string]*council.Member, len(ds.Members))
	for _, m := range ds.Members {
		ids[m.Name] = m
	}

	counts := make(map[pairKey]*Pair)
	var sides []side
	for _, v := range ds.Votes {
		sides = sides[:0]
		for name, c := range v.Choices {
			m, ok := ids[name]
			if !ok || !c.Comparable() {
				continue
			}
			sides = append(sides, side{id: m.ID, choice: string(c)})
		}
		slices.SortFunc(sides, func(x, y side) int { return cmp.Compare(x.id, y.id) })

		for i := range sides {
			for j := i + 1; j < len(sides); j++ {
				k := pairKey{sides[i].id, sides[j].id}
				p, ok := counts[k]
				if !ok {
					p = &Pair{MemberAID: k.a, MemberBID: k.b}
					counts[k] = p
				}
				p.Shared++
				if sides[i].choice == sides[j].choice {
					p.Agreements++
				}
			}
		}
	}

	byID := make(map[int]string, len(ds.Members))
	for _, m := range ds.Members {
		byID[m.ID] = m.Name
	}

	al := &Alignment{Pairs: make([]Pair, 0, len(counts))}
	for _, p := range counts {
		p.MemberA = byID[p.MemberAID]
		p.MemberB = byID[p.MemberBID]
		p.Rate = Percent(p.Agreements, p.Shared)
		al.Pairs = append(al.Pairs, *p)
	}
	slices.SortFunc(al.Pairs, func(x, y Pair) int {
		return cmp.Or(
			cmp.Compare(y.Rate, x.Rate),
			cmp.Compare(y.Shared, x.Shared),
			cmp.Compare(x.MemberAID, y.MemberAID),
			cmp.Compare(x.MemberBID, y.MemberBID),
		)
	})

	n := min(constants.CuratedAlignmentPairs, len(al.Pairs))
	al.MostAligned = slices.Clone(al.Pairs[:n])
	al.LeastAligned = slices.Clone(al.Pairs[len(al.Pairs)-n:])
	slices.Reverse(al.LeastAligned)
	return al
}

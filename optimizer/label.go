// SPDX-License-Identifier: MIT

package optimizer

import (
	"cmp"
	"slices"
	"sort"
	"time"

	"github.com/katalvlaran/routesolver/trip"
)

// label is a partial route ending in an arena node. Labels form a tree
// through parent; the origin label has neither parent nor leg.
type label struct {
	price  trip.Money
	start  time.Time // first departure
	leg    *trip.Leg // last leg taken
	parent *label
}

func (l *label) duration() time.Duration { return l.leg.Arrival.Sub(l.start) }

// compareLabels orders labels of equal depth by price, duration and leg
// sequence, which is trip.Compare on the itineraries they spell.
func compareLabels(a, b *label) int {
	if c := cmp.Compare(a.price, b.price); c != 0 {
		return c
	}
	if c := cmp.Compare(a.duration(), b.duration()); c != 0 {
		return c
	}

	return compareSeq(a, b)
}

// compareSeq compares the leg sequences of two labels of equal depth.
func compareSeq(a, b *label) int {
	if a == b {
		return 0
	}
	if c := compareSeq(a.parent, b.parent); c != 0 {
		return c
	}

	return trip.CompareLegs(*a.leg, *b.leg)
}

// insertK adds l to the sorted list if it ranks among the k best.
func insertK(list []*label, l *label, k int) []*label {
	i := sort.Search(len(list), func(i int) bool { return compareLabels(l, list[i]) < 0 })
	if i >= k {
		return list
	}
	list = slices.Insert(list, i, l)
	if len(list) > k {
		list[k] = nil
		list = list[:k]
	}

	return list
}

// legs unwinds the label tree into travel order.
func (l *label) legs() []trip.Leg {
	var out []trip.Leg
	for at := l; at.leg != nil; at = at.parent {
		out = append(out, *at.leg)
	}
	slices.Reverse(out)

	return out
}

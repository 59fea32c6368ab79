package pathkit

import (
	"sort"

	"github.com/pathkit/pathkit/interval"
)

// SegmentRef addresses one stored segment: the subpath index within
// the shape and the segment index within that subpath.
type SegmentRef struct {
	Subpath int
	Index   int
}

// Segment resolves the reference against s. It returns nil when the
// reference is stale.
func (r SegmentRef) Segment(s *Shape) Segment {
	if r.Subpath < 0 || r.Subpath >= len(s.subpaths) {
		return nil
	}
	segs := s.subpaths[r.Subpath].segments
	if r.Index < 0 || r.Index >= len(segs) {
		return nil
	}
	return segs[r.Index]
}

// OverlappingSegmentPairs reports every pair of distinct segments
// whose bounding boxes overlap, including pairs from different
// subpaths. Candidates are found through an interval index over the
// segments' X extents rather than an exhaustive pairwise scan; only
// candidates are checked against the Y extent.
//
// The result is a superset of the truly intersecting pairs, the
// usual broad phase before an exact curve intersection test. Pairs
// are ordered by their first, then second reference.
func (s *Shape) OverlappingSegmentPairs() [][2]SegmentRef {
	type indexed struct {
		ref SegmentRef
		box Box
	}
	var all []indexed
	for si, sp := range s.subpaths {
		for i, seg := range sp.segments {
			all = append(all, indexed{
				ref: SegmentRef{Subpath: si, Index: i},
				box: seg.Bounds(),
			})
		}
	}
	if len(all) < 2 {
		return nil
	}

	tree := interval.New[int]()
	for id, v := range all {
		tree.Add(id, v.box.MinX, v.box.MaxX)
	}

	var pairs [][2]SegmentRef
	for id, v := range all {
		var hits []int
		tree.Query(v.box.MinX, v.box.MaxX, func(other int) bool {
			// Each unordered pair is reported from its lower id only.
			if other > id {
				hits = append(hits, other)
			}
			return true
		})
		sort.Ints(hits)
		for _, other := range hits {
			o := all[other]
			if v.box.MinY <= o.box.MaxY && o.box.MinY <= v.box.MaxY {
				pairs = append(pairs, [2]SegmentRef{v.ref, o.ref})
			}
		}
	}
	return pairs
}

package dump

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Neighbor is one result of a nearest-neighbour query.
type Neighbor struct {
	Level    int
	Point    Point
	Distance float64 // Euclidean
}

// Index is a k-d tree over every point of a dump, keeping the level each
// point came from. Points with a NaN or infinite coordinate are not indexed.
type Index struct {
	tree *kdtree.Tree
}

// NewIndex builds an Index over levels.
func NewIndex(levels Levels) *Index {
	var pts indexedPoints
	for _, id := range levels.IDs() {
		for seq, p := range levels[id] {
			if !isFinite(p) {
				continue
			}
			pts = append(pts, indexedPoint{level: id, seq: seq, p: p})
		}
	}
	return &Index{tree: kdtree.New(pts, false)}
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return ix.tree.Len() }

// Nearest returns up to k points closest to q, nearest first. Equal
// distances are ordered by level and then dump order.
func (ix *Index) Nearest(q Point, k int) []Neighbor {
	if k <= 0 || ix.tree.Len() == 0 {
		return nil
	}
	keep := kdtree.NewNKeeper(k)
	ix.tree.NearestSet(keep, indexedPoint{p: q})

	out := make([]Neighbor, 0, len(keep.Heap))
	seqs := make([]int, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		ip := c.Comparable.(indexedPoint)
		out = append(out, Neighbor{Level: ip.level, Point: ip.p, Distance: math.Sqrt(c.Dist)})
		seqs = append(seqs, ip.seq)
	}
	sort.Sort(byDistance{out, seqs})
	return out
}

// Nearest is a one-shot query: it indexes levels and returns up to k points
// closest to q.
func Nearest(levels Levels, q Point, k int) []Neighbor {
	return NewIndex(levels).Nearest(q, k)
}

func isFinite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// indexedPoint is a kdtree.Comparable carrying its level and position in
// the level.
type indexedPoint struct {
	level int
	seq   int
	p     Point
}

func (a indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	b := c.(indexedPoint)
	switch d {
	case 0:
		return a.p.X - b.p.X
	case 1:
		return a.p.Y - b.p.Y
	default:
		panic("illegal dimension")
	}
}

func (a indexedPoint) Dims() int { return 2 }

// Distance is the squared Euclidean distance, as kdtree expects.
func (a indexedPoint) Distance(c kdtree.Comparable) float64 {
	b := c.(indexedPoint)
	dx, dy := a.p.X-b.p.X, a.p.Y-b.p.Y
	return dx*dx + dy*dy
}

// indexedPoints satisfies kdtree.Interface.
type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p indexedPoints) Len() int                              { return len(p) }
func (p indexedPoints) Pivot(d kdtree.Dim) int                { return plane{indexedPoints: p, Dim: d}.Pivot() }
func (p indexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts indexedPoints along one dimension for median selection.
type plane struct {
	kdtree.Dim
	indexedPoints
}

func (p plane) Less(i, j int) bool {
	a, b := p.indexedPoints[i], p.indexedPoints[j]
	if p.Dim == 0 {
		return a.p.X < b.p.X
	}
	return a.p.Y < b.p.Y
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.indexedPoints = p.indexedPoints[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.indexedPoints[i], p.indexedPoints[j] = p.indexedPoints[j], p.indexedPoints[i]
}

type byDistance struct {
	n    []Neighbor
	seqs []int
}

func (s byDistance) Len() int { return len(s.n) }
func (s byDistance) Less(i, j int) bool {
	if s.n[i].Distance != s.n[j].Distance {
		return s.n[i].Distance < s.n[j].Distance
	}
	if s.n[i].Level != s.n[j].Level {
		return s.n[i].Level < s.n[j].Level
	}
	return s.seqs[i] < s.seqs[j]
}
func (s byDistance) Swap(i, j int) {
	s.n[i], s.n[j] = s.n[j], s.n[i]
	s.seqs[i], s.seqs[j] = s.seqs[j], s.seqs[i]
}

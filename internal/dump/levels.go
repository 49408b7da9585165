// Package dump parses, summarises and writes level/point debug dumps.
//
// A dump is a line-oriented text stream in which `{` and `}` bracket nested
// scopes, `Level N:` sets the level that subsequent points belong to and
// `Point x y` declares a 2D point:
//
//	{
//	Level 3:
//	Point 1.5 2.25
//	}
//
// Points seen before any Level line belong to RootLevel.
package dump

import "sort"

// RootLevel is the level id used for points declared before any Level line.
const RootLevel = 10000

// Point is a 2D coordinate taken from a Point line.
type Point struct {
	X float64
	Y float64
}

// Levels maps a level id to the points declared under it, in dump order.
type Levels map[int][]Point

// Append adds p to the end of the point list for level, creating the list if
// the level has not been seen yet.
func (l Levels) Append(level int, p Point) {
	l[level] = append(l[level], p)
}

// IDs returns the level ids in ascending order.
func (l Levels) IDs() []int {
	ids := make([]int, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// PointCount returns the number of points across all levels.
func (l Levels) PointCount() int {
	n := 0
	for _, pts := range l {
		n += len(pts)
	}
	return n
}

// MaxLevel returns the highest level id other than RootLevel. ok is false when
// the dump only has root points (or none at all).
func (l Levels) MaxLevel() (max int, ok bool) {
	for id := range l {
		if id == RootLevel {
			continue
		}
		if !ok || id > max {
			max = id
			ok = true
		}
	}
	return max, ok
}

// XY splits the points of a level into separate x and y slices.
func (l Levels) XY(level int) (xs, ys []float64) {
	pts := l[level]
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

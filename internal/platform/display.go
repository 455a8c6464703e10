package platform

// NearestDisplay returns the display a window rectangle belongs to: the
// display with the largest intersection, else the closest one by edge
// distance. ok is false only when displays is empty.
func NearestDisplay(r Rect, displays []Display) (Display, bool) {
	if len(displays) == 0 {
		return Display{}, false
	}

	best := -1
	bestArea := 0
	for i := range displays {
		if area := intersectionArea(r, displays[i].Bounds); area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best >= 0 {
		return displays[best], true
	}

	best = 0
	bestDist := -1
	for i := range displays {
		d := edgeDistance(r, displays[i].Bounds)
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return displays[best], true
}

func intersectionArea(a, b Rect) int {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.Right(), b.Right())
	y2 := min(a.Bottom(), b.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1)
}

// edgeDistance is the Manhattan gap between two non-overlapping rectangles.
func edgeDistance(a, b Rect) int {
	dx := 0
	switch {
	case a.Right() <= b.X:
		dx = b.X - a.Right()
	case b.Right() <= a.X:
		dx = a.X - b.Right()
	}
	dy := 0
	switch {
	case a.Bottom() <= b.Y:
		dy = b.Y - a.Bottom()
	case b.Bottom() <= a.Y:
		dy = a.Y - b.Bottom()
	}
	return dx + dy
}

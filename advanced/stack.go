package advanced

// Work stack for legalization. Holds triangles incident to the point being
// inserted whose opposite edge still has to be checked.
type TriangleStack []TriangleID

func (s *TriangleStack) Push(t TriangleID) {
	*s = append(*s, t)
}

func (s *TriangleStack) Pop() TriangleID {
	if len(*s) == 0 {
		return NoTriangle
	}
	t := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return t
}

func (s *TriangleStack) Empty() bool {
	return len(*s) == 0
}

package main

import (
	"fmt"
	"regexp"
	"strconv"
)

// geometry is a crop rectangle in X11 geometry notation.
type geometry struct {
	Width, Height, X, Y int
}

var geometryRe = regexp.MustCompile(`^(\d+)x(\d+)(?:\+(\d+)\+(\d+))?$`)

// parseGeometry reads "WxH" or "WxH+X+Y".
func parseGeometry(s string) (geometry, error) {
	m := geometryRe.FindStringSubmatch(s)
	if m == nil {
		return geometry{}, fmt.Errorf("invalid geometry %q: want WxH+X+Y", s)
	}
	var g geometry
	for i, dst := range []*int{&g.Width, &g.Height, &g.X, &g.Y} {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return geometry{}, fmt.Errorf("invalid geometry %q: %w", s, err)
		}
		*dst = v
	}
	return g, nil
}

func (g geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

package geom

import (
	"slices"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// FaceSignature summarizes the shape of a face as a string: the sorted
// magnitudes of the corner cross products, each rounded to sensitivity
// significant figures, written forward and then reversed. Congruent faces,
// including mirror images, share a signature. Painters use it to give
// congruent faces the same color class.
func FaceSignature(pts []v3.Vec, sensitivity int) string {
	if len(pts) < 3 {
		return ""
	}
	if sensitivity < 1 {
		sensitivity = 1
	}
	mags := make([]float64, 0, len(pts))
	v1, v2 := pts[len(pts)-2], pts[len(pts)-1]
	for _, v := range pts {
		mags = append(mags, v1.Sub(v2).Cross(v.Sub(v2)).Length())
		v1, v2 = v2, v
	}
	slices.Sort(mags)

	parts := lo.Map(mags, func(m float64, _ int) string {
		return strconv.FormatFloat(m, 'g', sensitivity, 64)
	})
	forward := strings.Join(parts, ",")
	slices.Reverse(parts)
	return forward + ";" + strings.Join(parts, ",")
}

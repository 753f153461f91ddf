package pipeline

import "ocrstream/pkg/types"

// translateROI shifts every polygon into original-image space when the frame
// was cropped client-side. Detections are modified in place.
func translateROI(dets []Detection, meta types.FrameMeta) {
	if !meta.IsROI || meta.ROICoords == nil {
		return
	}
	dx, dy := meta.ROICoords.X, meta.ROICoords.Y
	for i := range dets {
		for j := range dets[i].Polygon {
			dets[i].Polygon[j].X += dx
			dets[i].Polygon[j].Y += dy
		}
	}
}

// clampConfidence keeps engine scores inside [0,1].
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

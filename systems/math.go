package systems

import "gonum.org/v1/gonum/spatial/r2"

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// wrapCoord teleports a coordinate that left [0, size] to the opposite edge.
func wrapCoord(v, size float64) float64 {
	if v < 0 {
		return size
	}
	if v > size {
		return 0
	}
	return v
}

// reflectAxis flips vel when pos is past an edge and still heading outward.
// Returns true if the velocity was flipped.
func reflectAxis(pos float64, vel *float64, size float64) bool {
	if (pos < 0 && *vel < 0) || (pos > size && *vel > 0) {
		*vel = -*vel
		return true
	}
	return false
}

// limitSpeed rescales v so its magnitude does not exceed maxSpeed.
func limitSpeed(v r2.Vec, maxSpeed float64) r2.Vec {
	speed := r2.Norm(v)
	if speed > maxSpeed && speed > 0 {
		return r2.Scale(maxSpeed/speed, v)
	}
	return v
}

// fade maps a distance inside [0, limit) to a weight in (0, 1].
func fade(dist, limit float64) float64 {
	return 1 - dist/limit
}

package curate

// Packed is the packer output; Total is the sum of accepted durations
type Packed struct {
	Scenes  []Scene `json:"scenes"`
	Total   float64 `json:"total"`
	Skipped int     `json:"skipped"`
}

// Pack walks scenes in order, skipping any that would push the total past
// target*overflow and stopping once the total reaches target.
// Skips never stop the walk; a shorter scene later on may still fit.
func Pack(scenes []Scene, target, overflow float64) Packed {
	budget := target * overflow
	res := Packed{Scenes: []Scene{}}
	for _, s := range scenes {
		d := s.Duration()
		if res.Total+d > budget {
			res.Skipped++
			continue
		}
		res.Scenes = append(res.Scenes, s)
		res.Total += d
		if res.Total >= target {
			break
		}
	}
	return res
}

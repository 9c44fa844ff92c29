package centipede

// newTestState returns an empty w x h state with no mushrooms or bullets.
func newTestState(w, h int, segments ...Position) *State {
	return &State{
		Board:            NewBoard(w, h),
		Player:           Position{X: w / 2, Y: h - 1},
		Segments:         segments,
		Direction:        DirRight,
		pointsPerSegment: 10,
	}
}

// scriptedRand replays fixed values and counts draws.
type scriptedRand struct {
	floats []float64
	ints   []int
	draws  int
}

func (r *scriptedRand) Float64() float64 {
	v := 0.99
	if r.draws < len(r.floats) {
		v = r.floats[r.draws]
	}
	r.draws++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

package airspace

type Flight struct {
	ID        string    `json:"id"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Direction Direction `json:"direction"`
}

// Advance moves the flight one tick. The heading is left untouched.
func (f *Flight) Advance(g Grid) {
	f.X, f.Y = Step(g, f.X, f.Y, f.Direction)
}

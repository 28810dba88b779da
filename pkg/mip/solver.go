package mip

type Solver interface {
	Solve(*Problem) (*Solution, error) // Returns a Solution whose Status reports feasibility; the error is reserved for invocation failures (the backend itself crashing or misbehaving)
}

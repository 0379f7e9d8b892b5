package pong

type Vector struct {
	X int
	Y int
}

type Role int

const (
	LeftPaddle Role = iota
	Ball
	RightPaddle
)

func (r Role) String() string {
	switch r {
	case LeftPaddle:
		return "left paddle"
	case Ball:
		return "ball"
	case RightPaddle:
		return "right paddle"
	}
	return "unknown"
}

// Body is the physical state of one window. Size.X is the width and Size.Y
// the height.
type Body struct {
	Pos  Vector
	Size Vector
	Vel  Vector
}

type Entity struct {
	Body
	Role Role
}

// Tuning holds the constants that shape the game. Speeds are in pixels per
// second on a 1000 pixel wide screen.
type Tuning struct {
	HitSpeedup  int
	SpinFactor  int
	SpinLimit   int
	PaddleAccel int
	BallSpeed   Vector
	WindowSize  int
}

func DefaultTuning() Tuning {
	return Tuning{
		HitSpeedup:  15,
		SpinFactor:  4,
		SpinLimit:   400,
		PaddleAccel: 100,
		BallSpeed:   Vector{X: 170, Y: 170},
		WindowSize:  150,
	}
}

type GameState struct {
	Screen Vector
	Tuning Tuning
	Left   Entity
	Ball   Entity
	Right  Entity

	// Lost is set while the ball is past a paddle's face after a miss so the
	// same pass is not resolved twice. It is shared by both sides.
	Lost bool
}

type Outcome int

const (
	InPlay Outcome = iota
	LeftWins
	RightWins
)

func (o Outcome) String() string {
	switch o {
	case LeftWins:
		return "Left wins!"
	case RightWins:
		return "Right wins!"
	}
	return "in play"
}

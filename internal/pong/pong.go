package pong

import (
	"math"

	"golang.org/x/exp/rand"
)

// Speeds are defined for a screen this wide and scaled to the real one.
const referenceWidth = 1000.0

// NewGameState lays out the three windows: the ball centered, the paddles
// glued to the left and right edges one pixel below the top. Placing a window
// at exactly (0, 0) makes some window managers recenter it after a decoration
// toggle.
func NewGameState(screen Vector, tuning Tuning) *GameState {
	size := Vector{X: tuning.WindowSize, Y: tuning.WindowSize}

	return &GameState{
		Screen: screen,
		Tuning: tuning,
		Left: Entity{
			Role: LeftPaddle,
			Body: Body{Pos: Vector{X: 0, Y: 1}, Size: size},
		},
		Ball: Entity{
			Role: Ball,
			Body: Body{
				Pos: Vector{
					X: screen.X/2 - size.X/2,
					Y: screen.Y/2 - size.Y/2,
				},
				Size: size,
				Vel:  tuning.BallSpeed,
			},
		},
		Right: Entity{
			Role: RightPaddle,
			Body: Body{Pos: Vector{X: screen.X - size.X, Y: 1}, Size: size},
		},
	}
}

// Serve randomizes the direction of the ball without changing its speed.
func (s *GameState) Serve(r *rand.Rand) {
	s.Ball.Vel.X *= r.Intn(2)*2 - 1
	s.Ball.Vel.Y *= r.Intn(2)*2 - 1
}

// Entities returns the entities in the order they are moved each tick.
func (s *GameState) Entities() []*Entity {
	return []*Entity{&s.Left, &s.Right, &s.Ball}
}

// Reflect mirrors pos back inside [min, max] and flips the speed when pos has
// crossed one of the bounds.
func Reflect(speed, pos, min, max int) (int, int) {
	if pos > max {
		return -speed, 2*max - pos
	}
	if pos < min {
		return -speed, 2*min - pos
	}
	return speed, pos
}

// Move advances the body by delta seconds and bounces it off the top and
// bottom of the screen. Positions are truncated toward zero.
func (b *Body) Move(screen Vector, delta float64) {
	scale := float64(screen.X) / referenceWidth * delta

	b.Pos.X = int(float64(b.Pos.X) + float64(b.Vel.X)*scale)
	b.Pos.Y = int(float64(b.Pos.Y) + float64(b.Vel.Y)*scale)

	b.Vel.Y, b.Pos.Y = Reflect(b.Vel.Y, b.Pos.Y, 0, screen.Y-b.Size.Y)
}

func (b *Body) centerY() int {
	return b.Pos.Y + b.Size.Y/2
}

func (b *Body) overlapsY(o *Body) bool {
	return b.Pos.Y+b.Size.Y > o.Pos.Y && b.Pos.Y < o.Pos.Y+o.Size.Y
}

// Step moves every entity and resolves collisions for this tick.
func (s *GameState) Step(delta float64) Outcome {
	for _, e := range s.Entities() {
		e.Move(s.Screen, delta)
	}
	return s.Resolve()
}

// Resolve handles ball/paddle contact and reports whether a side has won.
func (s *GameState) Resolve() Outcome {
	ball := &s.Ball

	if ball.Pos.X < s.Left.Pos.X+s.Left.Size.X {
		if !s.Lost && ball.overlapsY(&s.Left.Body) {
			ball.Vel.X, ball.Pos.X = Reflect(ball.Vel.X, ball.Pos.X, s.Left.Pos.X+s.Left.Size.X, math.MaxInt)
			// Make the game advance faster
			ball.Vel.X += s.Tuning.HitSpeedup
			s.spin(&s.Left)
		} else {
			s.Lost = true
		}
	} else if ball.Pos.X+ball.Size.X > s.Right.Pos.X {
		if !s.Lost && ball.overlapsY(&s.Right.Body) {
			ball.Vel.X, ball.Pos.X = Reflect(ball.Vel.X, ball.Pos.X, math.MinInt, s.Right.Pos.X-ball.Size.X)
			ball.Vel.X -= s.Tuning.HitSpeedup
			s.spin(&s.Right)
		} else {
			s.Lost = true
		}
	} else {
		s.Lost = false
	}

	if ball.Pos.X < 0 {
		return RightWins
	}
	if ball.Pos.X > s.Screen.X-ball.Size.X {
		return LeftWins
	}
	return InPlay
}

func (s *GameState) spin(paddle *Entity) {
	ball := &s.Ball
	ball.Vel.Y += (ball.centerY() - paddle.centerY()) * s.Tuning.SpinFactor
	ball.Vel.Y = clamp(ball.Vel.Y, -s.Tuning.SpinLimit, s.Tuning.SpinLimit)
	s.Lost = false
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Push changes the vertical speed of a paddle by one acceleration step in the
// given direction (-1 up, +1 down).
func (s *GameState) Push(role Role, dir int) {
	switch role {
	case LeftPaddle:
		s.Left.Vel.Y += dir * s.Tuning.PaddleAccel
	case RightPaddle:
		s.Right.Vel.Y += dir * s.Tuning.PaddleAccel
	}
}

// Absorb takes a size reported by the window system. The right paddle is
// anchored to the right edge so its x position follows its width.
func (s *GameState) Absorb(role Role, size Vector) {
	var e *Entity
	switch role {
	case LeftPaddle:
		e = &s.Left
	case Ball:
		e = &s.Ball
	case RightPaddle:
		e = &s.Right
		e.Pos.X = s.Screen.X - size.X
	default:
		return
	}
	e.Size = size
}

package common

import (
	"fmt"
	"math"
)

// Zero values for reducing allocations
var (
	ZeroVector2F32 = Vector2[float32]{}
	ZeroVector2INT = Vector2[int]{}
)

// We will use generics for vectors

type Vector2[T Numbers] struct {
	X, Y T
}

func (v Vector2[T]) String() string {
	return fmt.Sprintf("Vector2(X: %v, Y: %v)", v.X, v.Y)
}

// just a shortcut
func Vec2[T Numbers](X, Y T) Vector2[T] {
	return Vector2[T]{X: X, Y: Y}
}

func (v Vector2[T]) Width() T {
	return v.X
}

func (v Vector2[T]) Height() T {
	return v.Y
}

func (v Vector2[T]) ToInt() Vector2[int] {
	return Vector2[int]{
		X: int(math.Floor(float64(v.X))),
		Y: int(math.Floor(float64(v.Y))),
	}
}

func (v Vector2[T]) ToF32() Vector2[float32] {
	return Vector2[float32]{
		X: float32(v.X),
		Y: float32(v.Y),
	}
}

// Add two vectors
func (v Vector2[T]) Add(v1 Vector2[T]) Vector2[T] {
	v.X += v1.X
	v.Y += v1.Y
	return v
}

// Subtract v1 from v
func (v Vector2[T]) Sub(v1 Vector2[T]) Vector2[T] {
	v.X -= v1.X
	v.Y -= v1.Y
	return v
}

// Multiplies the vector by a scalar
func (v Vector2[T]) MulS(S T) Vector2[T] {
	v.X *= S
	v.Y *= S
	return v
}

// Divides the vector by a scalar
func (v Vector2[T]) DivS(S T) Vector2[T] {
	v.X /= S
	v.Y /= S
	return v
}

// Returns true if the vectors are equal
func (v Vector2[T]) Equals(v1 Vector2[T]) bool {
	return v.X == v1.X && v.Y == v1.Y
}

// Returns true if the vector is in given rectangle
func (v Vector2[T]) IsInRect(rect Rectangle[T]) bool {
	return v.X >= rect.X && v.Y >= rect.Y && v.X < rect.X+rect.W && v.Y < rect.Y+rect.H
}

package opengl

import (
	"fmt"

	"github.com/texkit/texkit/pkg/common"
)

// Matrix3 is a row-major 3x3 matrix using the row-vector convention,
// points transform as (x, y, 1) * M and the translation lives in the
// third row.
type Matrix3 [9]float32

func (m Matrix3) String() string {
	return fmt.Sprintf("Matrix3(%v %v %v | %v %v %v | %v %v %v)",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

func IdentityMatrix3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix3) TransformPoint(p common.Vector2[float32]) common.Vector2[float32] {
	return common.Vec2(
		p.X*m[0]+p.Y*m[3]+m[6],
		p.X*m[1]+p.Y*m[4]+m[7],
	)
}

// Mul multiplies two matrices, m first then m1.
func (m Matrix3) Mul(m1 Matrix3) Matrix3 {
	result := Matrix3{}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sum := float32(0)
			for i := 0; i < 3; i++ {
				sum += m[row*3+i] * m1[i*3+col]
			}
			result[row*3+col] = sum
		}
	}
	return result
}

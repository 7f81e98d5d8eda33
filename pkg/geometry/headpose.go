package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/StutiRuparel/FocusMind/pkg/landmark"
)

// faceModel is a rigid 3D head model in millimetres, origin at the
// nose tip, +Y up and +Z out of the face. Row order matches
// headPoseIndices.
var faceModel = [6][3]float64{
	{0.0, 0.0, 0.0},       // nose tip
	{0.0, -63.6, -12.5},   // chin
	{-43.3, 32.7, -26.0},  // eye corner, image left
	{43.3, 32.7, -26.0},   // eye corner, image right
	{-28.9, -28.9, -24.1}, // mouth corner, image left
	{28.9, -28.9, -24.1},  // mouth corner, image right
}

// headPoseIndices are the frame landmarks paired with faceModel rows.
var headPoseIndices = [6]int{
	landmark.NoseTip,
	landmark.Chin,
	landmark.RightEyeOuter,
	landmark.LeftEyeOuter,
	landmark.MouthRight,
	landmark.MouthLeft,
}

const (
	poseMaxIterations = 60
	poseTolerance     = 1e-9
	poseMaxLambda     = 1e12
)

// HeadPose estimates head pitch and yaw in degrees from the six pose
// landmarks, assuming a pinhole camera with focal length equal to the
// frame width, principal point at the frame centre, and no lens
// distortion. Angles are folded into (-90, 90] so a frontal face
// reads near zero. ok is false when landmarks are missing or the
// solve fails.
func HeadPose(f landmark.Frame) (pitch, yaw float64, ok bool) {
	if f.Width <= 0 || f.Height <= 0 {
		return 0, 0, false
	}

	var img [6][2]float64
	for i, idx := range headPoseIndices {
		p, present := f.At(idx)
		if !present {
			return 0, 0, false
		}
		img[i] = [2]float64{p.X, p.Y}
	}

	cam := pinholeCamera{
		fx: float64(f.Width),
		fy: float64(f.Width),
		cx: float64(f.Width) / 2,
		cy: float64(f.Height) / 2,
	}

	p, solved := solvePose(img, cam)
	if !solved {
		return 0, 0, false
	}

	pitch, yaw, _ = MatrixToEuler(rodrigues(p.rotation))
	return wrapHalfTurn(pitch), wrapHalfTurn(yaw), true
}

// wrapHalfTurn folds an angle in degrees into (-90, 90], resolving
// the front/back ambiguity of the Euler decomposition.
func wrapHalfTurn(deg float64) float64 {
	if deg > 90 {
		return deg - 180
	}
	if deg < -90 {
		return deg + 180
	}
	return deg
}

// pinholeCamera holds the intrinsics of the assumed camera.
type pinholeCamera struct {
	fx, fy, cx, cy float64
}

// pose is an axis-angle rotation plus a translation in the camera
// frame, millimetres.
type pose struct {
	rotation    [3]float64
	translation [3]float64
}

// solvePose fits the head pose to the observed projections with
// Levenberg-Marquardt over the reprojection error. The initial guess
// is a face looking straight at the camera from about arm's length,
// the only configuration a webcam monitor ever sees.
func solvePose(img [6][2]float64, cam pinholeCamera) (pose, bool) {
	p := pose{
		rotation:    [3]float64{math.Pi, 0, 0},
		translation: [3]float64{0, 0, 600},
	}

	res := make([]float64, 12)
	if !reprojectionResiduals(p, img, cam, res) {
		return pose{}, false
	}
	cost := sumSquares(res)

	lambda := 1e-3
	jac := mat.NewDense(12, 6, nil)
	trial := make([]float64, 12)

	for iter := 0; iter < poseMaxIterations; iter++ {
		numericJacobian(p, img, cam, jac)

		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)

		grad := make([]float64, 6)
		for c := 0; c < 6; c++ {
			var s float64
			for r := 0; r < 12; r++ {
				s += jac.At(r, c) * res[r]
			}
			grad[c] = -s
		}

		damped := mat.NewSymDense(6, nil)
		for i := 0; i < 6; i++ {
			for j := i; j < 6; j++ {
				v := jtj.At(i, j)
				if i == j {
					v += lambda * math.Max(jtj.At(i, i), 1e-6)
				}
				damped.SetSym(i, j, v)
			}
		}

		var chol mat.Cholesky
		if !chol.Factorize(damped) {
			lambda *= 10
			if lambda > poseMaxLambda {
				return pose{}, false
			}
			continue
		}
		var step mat.VecDense
		if err := chol.SolveVecTo(&step, mat.NewVecDense(6, grad)); err != nil {
			lambda *= 10
			continue
		}

		candidate := p
		for i := 0; i < 3; i++ {
			candidate.rotation[i] += step.AtVec(i)
			candidate.translation[i] += step.AtVec(3 + i)
		}

		if !reprojectionResiduals(candidate, img, cam, trial) {
			lambda *= 10
			continue
		}
		trialCost := sumSquares(trial)

		if trialCost < cost {
			improvement := cost - trialCost
			p = candidate
			copy(res, trial)
			cost = trialCost
			lambda = math.Max(lambda*0.3, 1e-12)
			if improvement < poseTolerance {
				break
			}
		} else {
			lambda *= 10
			if lambda > poseMaxLambda {
				break
			}
		}
	}

	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return pose{}, false
	}
	return p, true
}

// reprojectionResiduals writes the pixel-space reprojection errors of
// the model under pose p into out. Returns false when a model point
// lands behind the camera.
func reprojectionResiduals(p pose, img [6][2]float64, cam pinholeCamera, out []float64) bool {
	r := rodrigues(p.rotation)
	for i := 0; i < 6; i++ {
		mx, my, mz := faceModel[i][0], faceModel[i][1], faceModel[i][2]
		x := r[0][0]*mx + r[0][1]*my + r[0][2]*mz + p.translation[0]
		y := r[1][0]*mx + r[1][1]*my + r[1][2]*mz + p.translation[1]
		z := r[2][0]*mx + r[2][1]*my + r[2][2]*mz + p.translation[2]
		if z <= 1e-6 {
			return false
		}
		out[2*i] = cam.fx*x/z + cam.cx - img[i][0]
		out[2*i+1] = cam.fy*y/z + cam.cy - img[i][1]
	}
	return true
}

// numericJacobian fills jac with central-difference derivatives of
// the residual vector with respect to the six pose parameters.
func numericJacobian(p pose, img [6][2]float64, cam pinholeCamera, jac *mat.Dense) {
	const h = 1e-6
	plus := make([]float64, 12)
	minus := make([]float64, 12)

	for c := 0; c < 6; c++ {
		pp, pm := p, p
		if c < 3 {
			pp.rotation[c] += h
			pm.rotation[c] -= h
		} else {
			pp.translation[c-3] += h
			pm.translation[c-3] -= h
		}
		okPlus := reprojectionResiduals(pp, img, cam, plus)
		okMinus := reprojectionResiduals(pm, img, cam, minus)
		for r := 0; r < 12; r++ {
			if okPlus && okMinus {
				jac.Set(r, c, (plus[r]-minus[r])/(2*h))
			} else {
				jac.Set(r, c, 0)
			}
		}
	}
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}

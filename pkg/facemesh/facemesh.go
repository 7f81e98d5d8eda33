// Package facemesh turns webcam frames into dense face landmark sets.
//
// Detection runs in two stages: a YuNet face detector finds the face
// box, then a face landmark network run on the cropped face produces
// the 478-point mesh consumed by the geometry package. A camera-free
// Synthetic source is included for demos and tests.
package facemesh

// Config holds camera and model settings for the landmark pipeline.
type Config struct {
	CameraIndex int
	Width       int
	Height      int

	// DetectorModelPath points at the YuNet face detection ONNX model.
	DetectorModelPath string
	// LandmarkModelPath points at the face landmark ONNX model. The
	// network must output at least 478 (x, y, z) triples per face.
	LandmarkModelPath string

	// ScoreThreshold is the minimum face detection confidence.
	ScoreThreshold float32
}

// DefaultConfig returns the default pipeline settings.
func DefaultConfig() Config {
	return Config{
		CameraIndex:       0,
		Width:             640,
		Height:            480,
		DetectorModelPath: "models/face_detection_yunet_2023mar.onnx",
		LandmarkModelPath: "models/face_landmarks_detector.onnx",
		ScoreThreshold:    0.5,
	}
}

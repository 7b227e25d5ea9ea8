package domain

import "time"

// ArtifactKind enumerates displayable artifact types.
type ArtifactKind string

const (
	ArtifactKindImage ArtifactKind = "image"
	ArtifactKindVideo ArtifactKind = "video"
)

// Artifact is the single current result shown to the user. At most one
// exists per session; a new successful generation replaces it wholesale.
type Artifact struct {
	Kind       ArtifactKind
	MIME       string
	StorageKey string
	Bytes      int64
	CreatedAt  time.Time
}

// Seed is the source image an animation starts from, either a previously
// generated logo or a user upload.
type Seed struct {
	Data []byte
	MIME string
}

// ImageAspectRatios lists the aspect ratios the image service accepts.
var ImageAspectRatios = []string{"1:1", "16:9", "9:16", "4:3", "3:4"}

// VideoAspectRatios lists the aspect ratios the video service accepts.
var VideoAspectRatios = []string{"16:9", "9:16"}

// IsImageAspect reports whether ratio is a supported image aspect ratio.
func IsImageAspect(ratio string) bool {
	return containsString(ImageAspectRatios, ratio)
}

// IsVideoAspect reports whether ratio is a supported video aspect ratio.
func IsVideoAspect(ratio string) bool {
	return containsString(VideoAspectRatios, ratio)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

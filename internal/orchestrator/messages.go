package orchestrator

// videoStatusMessages is the fixed ordered list the progress ticker cycles
// through while a video job is in flight. The remote protocol exposes no
// granular progress, so these are purely cosmetic.
var videoStatusMessages = []string{
	"Initializing video synthesis engine...",
	"Analyzing image and prompt context...",
	"Choreographing pixel movements...",
	"Rendering initial animation frames...",
	"Applying cinematic lighting effects...",
	"Compositing layers and visual effects...",
	"Encoding video stream... this may take a moment.",
	"Performing quality checks and final optimizations...",
	"Almost there, preparing the final video file.",
}

// MessageAt returns the progress message shown at the given tick, wrapping
// cyclically when the list is exhausted.
func MessageAt(tick int) string {
	if tick < 0 {
		tick = 0
	}
	return videoStatusMessages[tick%len(videoStatusMessages)]
}

package crop

import "context"

// Cropper defines the interface for the crop service.
type Cropper interface {
	// CropVideo writes the [startSeconds, endSeconds] subclip of sourcePath to outputPath.
	CropVideo(ctx context.Context, sourcePath string, startSeconds, endSeconds float64, outputPath string) error
}

package model

import "image"

// RemovalResult describes the outcome of one background removal.
type RemovalResult struct {
	// Input is the path of the decoded image.
	Input string `json:"input"`

	// Output is the path the PNG was written to.
	Output string `json:"output"`

	// Format is the name of the decoder that read the input ("png", "jpeg", ...).
	Format string `json:"format,omitempty"`

	// Tolerance is the per-channel threshold used to classify background pixels.
	Tolerance int `json:"tolerance"`

	// OriginalBounds are the dimensions of the decoded input.
	OriginalBounds image.Rectangle `json:"original_bounds"`

	// Bounds is the region that was kept. It equals OriginalBounds when the
	// image became fully transparent.
	Bounds image.Rectangle `json:"bounds"`

	// Cropped is true when an opaque bounding box existed and was applied.
	Cropped bool `json:"cropped"`

	// ClearedPixels counts the pixels rewritten to transparent white.
	ClearedPixels int `json:"cleared_pixels"`

	// EXIFTags counts the EXIF tags found in the input. They are not
	// carried over to the PNG output.
	EXIFTags int `json:"exif_tags,omitempty"`

	// Err is set when the removal failed. Used by batch processing, where
	// one failed input does not stop the others.
	Err error `json:"-"`
}

// Succeeded reports whether the removal completed without error.
func (r *RemovalResult) Succeeded() bool {
	return r.Err == nil
}

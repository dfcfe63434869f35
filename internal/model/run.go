package model

import "time"

// Tool names recorded in the run history.
const (
	// ToolExtract identifies kanji extraction runs.
	ToolExtract = "extract"

	// ToolRemoveBG identifies background removal runs.
	ToolRemoveBG = "removebg"
)

// Run is one entry of the optional run history.
type Run struct {
	// ID is a random UUID assigned when the run is recorded.
	ID string `json:"id"`

	// Tool is ToolExtract or ToolRemoveBG.
	Tool string `json:"tool"`

	// Input is the input path of the run.
	Input string `json:"input"`

	// Output is the output path of the run.
	Output string `json:"output"`

	// Digest is the hex SHA3-256 of the written output. Two runs over the
	// same input produce the same digest.
	Digest string `json:"digest"`

	// Summary is a short human-readable description of the result,
	// e.g. "212 kanji, 148 compounds" or "640x480 -> 120x96".
	Summary string `json:"summary"`

	// CreatedAt is when the run was recorded.
	CreatedAt time.Time `json:"created_at"`
}

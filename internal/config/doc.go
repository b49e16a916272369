// Package config holds the tunable constants of the floor-plan engine and
// the pipeline around it.
//
// A Config starts from Default and can be overlaid from a TOML (.toml) or
// YAML (.yaml, .yml) file. Unknown keys are rejected. Every loaded or
// hand-built Config is checked with Validate before use; failures carry the
// INVALID_ARGUMENT code.
//
// Distance constants are expressed in pixels of the original image. When a
// preprocessing variant upscales the image, Scaled converts them to pixels
// of the upscaled image.
package config

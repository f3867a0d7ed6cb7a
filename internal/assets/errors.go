package assets

import "fmt"

// Stage names the step of loading that failed.
type Stage string

const (
	StageManifest Stage = "manifest"
	StageTexture  Stage = "texture"
	StageMesh     Stage = "mesh"
	StageUpload   Stage = "upload"
)

// LoadError is the single error a failed load surfaces. No part of the room
// is usable after it.
type LoadError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("assets: %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("assets: %s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

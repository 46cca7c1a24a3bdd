package driver

// Stage identifies a step of the transpilation pipeline.
type Stage uint8

const (
	StageDecode Stage = iota
	StageLower
	StageAssemble
	StageWrite
)

// Status is the per-file progress state reported to the UI.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress notification. File is empty for run-wide stage
// transitions.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}

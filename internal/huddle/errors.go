package huddle

// Kind classifies where a huddle build failed
type Kind string

const (
	KindLoad      Kind = "load"
	KindAggregate Kind = "aggregate"
)

// Error carries the failure kind alongside the underlying error.
// Its message is the underlying error's message, unchanged.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

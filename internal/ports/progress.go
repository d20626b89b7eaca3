package ports

// ProgressPort shows activity around a long running step.  Implementations
// must tolerate Stop without a prior Start.
type ProgressPort interface {
	Start(message string)
	Stop()
}

// NopProgress discards progress updates.
type NopProgress struct{}

func (NopProgress) Start(string) {}
func (NopProgress) Stop()        {}

package service

// Recorder receives board events for instrumentation.
// *metrics.Metrics implements it.
type Recorder interface {
	MessageCreated()
	MessageDeleted()
	Pruned(n int64)
	ReplyCreated()
	ReplyDeleted()
	TagCreated()
	TagSkipped()
}

type noopRecorder struct{}

func (noopRecorder) MessageCreated() {}
func (noopRecorder) MessageDeleted() {}
func (noopRecorder) Pruned(int64)    {}
func (noopRecorder) ReplyCreated()   {}
func (noopRecorder) ReplyDeleted()   {}
func (noopRecorder) TagCreated()     {}
func (noopRecorder) TagSkipped()     {}

func recorderOrNoop(r Recorder) Recorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}

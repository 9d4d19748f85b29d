package metrics

// The methods below let *Metrics serve as the services' event recorder.

func (m *Metrics) MessageCreated() { m.MessagesCreated.Inc() }
func (m *Metrics) MessageDeleted() { m.MessagesDeleted.Inc() }
func (m *Metrics) ReplyCreated()   { m.RepliesCreated.Inc() }
func (m *Metrics) ReplyDeleted()   { m.RepliesDeleted.Inc() }
func (m *Metrics) TagCreated()     { m.TagsCreated.Inc() }
func (m *Metrics) TagSkipped()     { m.TagAttachFailed.Inc() }
func (m *Metrics) SubmitLimited()  { m.SubmitsLimited.Inc() }

func (m *Metrics) Pruned(n int64) {
	if n > 0 {
		m.MessagesPruned.Add(float64(n))
	}
}

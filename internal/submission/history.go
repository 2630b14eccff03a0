package submission

// record appends e, dropping the oldest entry past the size limit.
// Callers hold c.mu.
func (c *Controller) record(e Entry) {
	if c.historySize == 0 {
		return
	}

	c.history = append(c.history, e)
	if over := len(c.history) - c.historySize; over > 0 {
		c.history = append(c.history[:0:0], c.history[over:]...)
	}
}

// History returns resolved submissions, newest first
func (c *Controller) History() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.history))
	for i, e := range c.history {
		out[len(c.history)-1-i] = e
	}
	return out
}

// ClearHistory forgets all resolved submissions
func (c *Controller) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = nil
}

// SetHistorySize changes the history limit, trimming if needed
func (c *Controller) SetHistorySize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n < 0 {
		n = 0
	}
	c.historySize = n
	if n == 0 {
		c.history = nil
		return
	}
	if over := len(c.history) - n; over > 0 {
		c.history = append(c.history[:0:0], c.history[over:]...)
	}
}

package installer

import "github.com/telekom/logmail/pkg/logevent"

type captureHandler struct {
	events []logevent.Event
}

func (c *captureHandler) Handle(ev logevent.Event) { c.events = append(c.events, ev) }
func (c *captureHandler) Flush() error             { return nil }
func (c *captureHandler) Close() error             { return nil }

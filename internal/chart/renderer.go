package chart

// Renderer receives one call per chart slot on every render pass.
type Renderer interface {
	Render(id ID, fig Figure)
	RenderEmpty(id ID, message string)
}

// Slot is the latest output for one chart. Exactly one of Figure and Empty is set.
type Slot struct {
	ID     ID      `json:"id"`
	Title  string  `json:"title"`
	Figure *Figure `json:"figure,omitempty"`
	Empty  string  `json:"empty,omitempty"`
}

func (s Slot) IsEmpty() bool {
	return s.Figure == nil
}

// Collector is a Renderer that keeps the latest slot per chart. Rendering the same
// id again replaces the previous slot.
type Collector struct {
	slots map[ID]Slot
}

func NewCollector() *Collector {
	return &Collector{slots: make(map[ID]Slot, len(Order))}
}

func (c *Collector) Render(id ID, fig Figure) {
	f := fig
	c.slots[id] = Slot{ID: id, Title: Title(id), Figure: &f}
}

func (c *Collector) RenderEmpty(id ID, message string) {
	c.slots[id] = Slot{ID: id, Title: Title(id), Empty: message}
}

// Slot returns the slot for id.
func (c *Collector) Slot(id ID) (Slot, bool) {
	s, ok := c.slots[id]
	return s, ok
}

// Slots returns the rendered slots in render order.
func (c *Collector) Slots() []Slot {
	out := make([]Slot, 0, len(c.slots))
	for _, id := range Order {
		if s, ok := c.slots[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Renderers fans every call out to each of its members in order.
type Renderers []Renderer

func (rs Renderers) Render(id ID, fig Figure) {
	for _, r := range rs {
		r.Render(id, fig)
	}
}

func (rs Renderers) RenderEmpty(id ID, message string) {
	for _, r := range rs {
		r.RenderEmpty(id, message)
	}
}

package orgast

// NodeKind identifies which of the four container kinds an Event describes.
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindHeadline
	KindPropertyDrawer
	KindTimestamp
)

// Event carries whichever payload matches its Kind. Only one of Headline,
// Drawer, or Timestamp is populated, per Kind.
type Event struct {
	Kind      NodeKind
	Headline  *Headline
	Drawer    map[string]string
	Timestamp *Timestamp
}

// Context is the capability handed to a Visitor: it can signal early
// termination. The traversal driver checks Stopped() after every event and
// fires no further events once it is set.
type Context struct{ stopped bool }

func (c *Context) Stop() { c.stopped = true }

func (c *Context) Stopped() bool { return c.stopped }

// Visitor receives enter/exit events for Document, Headline, PropertyDrawer,
// and Timestamp nodes. Concrete visitors (such as the ID finder behind
// outline.ElementByID) implement this single capability set without any
// inheritance between them -- embed NoOpVisitor to implement only the
// methods that matter.
type Visitor interface {
	OnEnter(ctx *Context, ev Event)
	OnExit(ctx *Context, ev Event)
}

// NoOpVisitor is embeddable so a concrete visitor only needs to override
// OnEnter and/or OnExit.
type NoOpVisitor struct{}

func (NoOpVisitor) OnEnter(*Context, Event) {}
func (NoOpVisitor) OnExit(*Context, Event)  {}

// Traverse walks the document depth-first in source order, firing
// enter/exit events for the document itself, each headline in turn, and
// that headline's property drawer and timestamps (if any). Traversal halts
// the instant the visitor calls ctx.Stop() -- no further events fire.
func (d *Document) Traverse(v Visitor) {
	ctx := &Context{}

	v.OnEnter(ctx, Event{Kind: KindDocument})
	if ctx.Stopped() {
		return
	}

	if len(d.Properties) > 0 {
		v.OnEnter(ctx, Event{Kind: KindPropertyDrawer, Drawer: d.Properties})
		if ctx.Stopped() {
			return
		}
		v.OnExit(ctx, Event{Kind: KindPropertyDrawer, Drawer: d.Properties})
		if ctx.Stopped() {
			return
		}
	}

	for _, h := range d.Headlines {
		v.OnEnter(ctx, Event{Kind: KindHeadline, Headline: h})
		if ctx.Stopped() {
			return
		}

		if len(h.Properties) > 0 {
			v.OnEnter(ctx, Event{Kind: KindPropertyDrawer, Drawer: h.Properties})
			if ctx.Stopped() {
				return
			}
			v.OnExit(ctx, Event{Kind: KindPropertyDrawer, Drawer: h.Properties})
			if ctx.Stopped() {
				return
			}
		}

		for _, ts := range []*Timestamp{h.Scheduled, h.Deadline} {
			if ts == nil {
				continue
			}
			v.OnEnter(ctx, Event{Kind: KindTimestamp, Timestamp: ts})
			if ctx.Stopped() {
				return
			}
			v.OnExit(ctx, Event{Kind: KindTimestamp, Timestamp: ts})
			if ctx.Stopped() {
				return
			}
		}

		v.OnExit(ctx, Event{Kind: KindHeadline, Headline: h})
		if ctx.Stopped() {
			return
		}
	}

	v.OnExit(ctx, Event{Kind: KindDocument})
}

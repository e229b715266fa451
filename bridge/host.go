package bridge

// Host is the embedding container the bridge renders into. In the mobile
// SDKs this is a web view; in this repository the webhost package provides
// an HTTP-backed implementation. The host is expected to deliver every
// message posted by the embedded content to Bridge.HandleMessage, tagged
// with the channel name it arrived on.
type Host interface {
	// LoadHTML renders a full document in the hosted surface.
	LoadHTML(html string) error

	// LoadURL navigates the hosted surface to a remote resource.
	LoadURL(url string) error
}

// RawMessage is the only unit crossing the host boundary: an opaque string
// body tagged with the channel it was posted on. Everything except the
// router and the decoders treats the body as opaque.
type RawMessage struct {
	ChannelName string
	Body        string
}

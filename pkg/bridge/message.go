package bridge

// Message types exchanged with the browser client. The protocol is
// three JSON messages over one WebSocket; it is an internal transport
// for the bridge, not a public contract.
const (
	// TypeHello is sent by the client once after connecting, carrying
	// the document's current URL. It attaches the document.
	TypeHello = "hello"

	// TypeReplace is sent by the server to replace the current
	// navigation entry without growing the history stack.
	TypeReplace = "replace"

	// TypeNavigated is sent by the client after any navigation
	// succeeded: an applied replace, back/forward, or an address-bar
	// edit the page script observed.
	TypeNavigated = "navigated"
)

// message is the wire form of every bridge message.
type message struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

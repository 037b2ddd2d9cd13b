package push

import "encoding/json"

// Fallback text used when a push message arrives empty or with fields
// missing.
const (
	FallbackTitle = "Family Shop"
	FallbackBody  = "Tienes una nueva notificación"
)

const (
	iconPath  = "/icons/icon-192.png"
	badgePath = "/icons/badge-72.png"
)

// Payload is the wire format of a push message. All fields are
// optional.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// ParsePayload decodes a push message body, substituting fallback text
// for anything missing. A malformed or empty body yields the pure
// fallback payload rather than an error; push delivery failure is
// silent by contract.
func ParsePayload(data []byte) Payload {
	var p Payload
	if len(data) > 0 {
		_ = json.Unmarshal(data, &p)
	}
	if p.Title == "" {
		p.Title = FallbackTitle
	}
	if p.Body == "" {
		p.Body = FallbackBody
	}
	if p.URL == "" {
		p.URL = "/"
	}
	return p
}

// Notification is what gets displayed, with the target URL attached as
// data for the click handler.
type Notification struct {
	Title string
	Body  string
	Icon  string
	Badge string
	URL   string
}

func (p Payload) Notification() Notification {
	return Notification{
		Title: p.Title,
		Body:  p.Body,
		Icon:  iconPath,
		Badge: badgePath,
		URL:   p.URL,
	}
}

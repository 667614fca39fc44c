package entity

type AttachmentField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type Attachment struct {
	Fields   []AttachmentField `json:"fields"`
	ThumbURL string            `json:"thumb_url,omitempty"`
}

// ChatMessage is the chat.postMessage request body.
type ChatMessage struct {
	Channel     string       `json:"channel"`
	Text        string       `json:"text"`
	ThreadTS    string       `json:"thread_ts,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

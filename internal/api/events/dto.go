package events

import "FaceReporter/internal/entity"

const (
	TypeURLVerification = "url_verification"
	TypeEventCallback   = "event_callback"

	EventTypeMessage = "message"
	SubtypeFileShare = "file_share"
)

// Envelope is the outer object of every Events API request.
type Envelope struct {
	Token     string        `json:"token"`
	Type      string        `json:"type"`
	Challenge string        `json:"challenge,omitempty"`
	TeamID    string        `json:"team_id,omitempty"`
	EventID   string        `json:"event_id,omitempty"`
	Event     *MessageEvent `json:"event,omitempty"`
}

type MessageEvent struct {
	Type    string             `json:"type"`
	Subtype string             `json:"subtype,omitempty"`
	Channel string             `json:"channel"`
	User    string             `json:"user,omitempty"`
	TS      string             `json:"ts"`
	Files   []entity.SlackFile `json:"files,omitempty"`
}

// Outcome is what the service decided for one envelope.
type Outcome struct {
	Challenge  string
	Dispatched int
	Duplicate  bool
}

type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

type AckResponse struct {
	OK bool `json:"ok"`
}

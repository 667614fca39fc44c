package entity

import "strings"

// SlackFile is the subset of a Slack file object the pipeline reads.
type SlackFile struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name,omitempty"`
	Title      string `json:"title"`
	Mimetype   string `json:"mimetype" validate:"required"`
	Filetype   string `json:"filetype" validate:"required"`
	URLPrivate string `json:"url_private" validate:"required,url"`
	Size       int64  `json:"size,omitempty"`
	User       string `json:"user,omitempty"`
}

func (f SlackFile) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(f.Mimetype), "image/")
}

// FileJob is one uploaded file to run through the face pipeline.
type FileJob struct {
	Channel string    `json:"channel" validate:"required"`
	TS      string    `json:"ts" validate:"required"`
	File    SlackFile `json:"file"`
}

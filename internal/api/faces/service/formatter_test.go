package facesService

import (
	"reflect"
	"testing"

	"FaceReporter/internal/entity"
)

func ptr[T any](v T) *T { return &v }

func TestFormatAttributes(t *testing.T) {
	face := entity.FaceDetection{
		Confidence: ptr(97.34),
		Smile:      &entity.BoolAttribute{Value: true, Confidence: 88.0},
	}

	got := FormatAttributes(face)
	want := []entity.AttachmentField{
		{Title: "Confidence", Value: "97.3 %", Short: true},
		{Title: "Smile", Value: "88.0 %", Short: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FormatAttributes() = %#v, want %#v", got, want)
	}
}

func TestFormatAttributesOrder(t *testing.T) {
	face := entity.FaceDetection{
		Beard:      &entity.BoolAttribute{Value: false, Confidence: 90},
		Mustache:   &entity.BoolAttribute{Value: false, Confidence: 91},
		MouthOpen:  &entity.BoolAttribute{Value: true, Confidence: 92},
		EyesOpen:   &entity.BoolAttribute{Value: true, Confidence: 93},
		Sunglasses: &entity.BoolAttribute{Value: false, Confidence: 94},
		Eyeglasses: &entity.BoolAttribute{Value: true, Confidence: 95},
		Emotions: []entity.Emotion{
			{Type: "HAPPY", Confidence: 80.05},
			{Type: "CALM", Confidence: 10},
		},
		Smile:      &entity.BoolAttribute{Value: false, Confidence: 70},
		AgeRange:   &entity.AgeRange{Low: 25, High: 35},
		Gender:     &entity.LabeledAttribute{Value: "Female", Confidence: 99.91},
		Confidence: ptr(99.99),
	}

	var titles, values []string
	for _, f := range FormatAttributes(face) {
		if !f.Short {
			t.Errorf("field %q is not short", f.Title)
		}
		titles = append(titles, f.Title)
		values = append(values, f.Value)
	}

	wantTitles := []string{
		"Confidence", "Female", "AgeRange", "Not Smile", "HAPPY", "CALM",
		"Eyeglasses", "Not Sunglasses", "EyesOpen", "MouthOpen", "Not Mustache", "Not Beard",
	}
	wantValues := []string{
		"100.0 %", "99.9 %", "25 - 35", "70.0 %", "80.1 %", "10.0 %",
		"95.0 %", "94.0 %", "93.0 %", "92.0 %", "91.0 %", "90.0 %",
	}
	if !reflect.DeepEqual(titles, wantTitles) {
		t.Errorf("titles = %v, want %v", titles, wantTitles)
	}
	if !reflect.DeepEqual(values, wantValues) {
		t.Errorf("values = %v, want %v", values, wantValues)
	}
}

func TestFormatAttributesEmpty(t *testing.T) {
	if got := FormatAttributes(entity.FaceDetection{}); len(got) != 0 {
		t.Fatalf("FormatAttributes() = %v, want no fields", got)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0 %"},
		{88, "88.0 %"},
		{97.34, "97.3 %"},
		{97.35, "97.4 %"},
		{99.95, "100.0 %"},
		{0.05, "0.1 %"},
		{0.04, "0.0 %"},
		{12.25, "12.3 %"},
		{-1.25, "-1.3 %"},
		{-0.01, "0.0 %"},
		{1e-7, "0.0 %"},
	}

	for _, tt := range tests {
		if got := formatPercent(tt.in); got != tt.want {
			t.Errorf("formatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildFaceMessage(t *testing.T) {
	job := entity.FileJob{
		Channel: "C1",
		TS:      "1700000000.000100",
		File:    entity.SlackFile{ID: "F1", Title: "team.png"},
	}
	fields := []entity.AttachmentField{{Title: "Smile", Value: "88.0 %", Short: true}}

	msg := BuildFaceMessage(job, 2, fields, "https://s3.amazonaws.com/thumbs/F1-2.png")

	if msg.Channel != "C1" || msg.ThreadTS != job.TS {
		t.Errorf("message routed to %s/%s, want C1/%s", msg.Channel, msg.ThreadTS, job.TS)
	}
	if msg.Text != "Face #2 in team.png" {
		t.Errorf("Text = %q", msg.Text)
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(msg.Attachments))
	}
	if msg.Attachments[0].ThumbURL != "https://s3.amazonaws.com/thumbs/F1-2.png" {
		t.Errorf("ThumbURL = %q", msg.Attachments[0].ThumbURL)
	}
	if !reflect.DeepEqual(msg.Attachments[0].Fields, fields) {
		t.Errorf("Fields = %v, want %v", msg.Attachments[0].Fields, fields)
	}
}

func TestThumbnailKey(t *testing.T) {
	if got := ThumbnailKey("F123", 0, "jpg"); got != "F123-0.jpg" {
		t.Fatalf("ThumbnailKey() = %q, want F123-0.jpg", got)
	}
}

package entity

// BoundingBox locates a face as fractions of the image width and height.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type BoolAttribute struct {
	Value      bool    `json:"value"`
	Confidence float64 `json:"confidence"`
}

type LabeledAttribute struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

type AgeRange struct {
	Low  int64 `json:"low"`
	High int64 `json:"high"`
}

type Emotion struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// FaceDetection is one face reported by the detector. Nil attributes were not
// returned and are skipped when formatting.
type FaceDetection struct {
	BoundingBox BoundingBox       `json:"bounding_box"`
	Confidence  *float64          `json:"confidence,omitempty"`
	Gender      *LabeledAttribute `json:"gender,omitempty"`
	AgeRange    *AgeRange         `json:"age_range,omitempty"`
	Smile       *BoolAttribute    `json:"smile,omitempty"`
	Emotions    []Emotion         `json:"emotions,omitempty"`
	Eyeglasses  *BoolAttribute    `json:"eyeglasses,omitempty"`
	Sunglasses  *BoolAttribute    `json:"sunglasses,omitempty"`
	EyesOpen    *BoolAttribute    `json:"eyes_open,omitempty"`
	MouthOpen   *BoolAttribute    `json:"mouth_open,omitempty"`
	Mustache    *BoolAttribute    `json:"mustache,omitempty"`
	Beard       *BoolAttribute    `json:"beard,omitempty"`
}

type FaceThumbnail struct {
	FaceIndex int    `json:"face_index"`
	Key       string `json:"key"`
	URL       string `json:"url"`
}

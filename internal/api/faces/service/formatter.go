package facesService

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"FaceReporter/internal/entity"
)

// attributeRule turns one attribute of a face into display fields. A rule
// returns nothing when the detector did not report its attribute.
type attributeRule func(face entity.FaceDetection) []entity.AttachmentField

// attributeSchema fixes the order of the fields in every face message.
var attributeSchema = []attributeRule{
	confidenceRule,
	genderRule,
	ageRangeRule,
	presenceRule("Smile", func(f entity.FaceDetection) *entity.BoolAttribute { return f.Smile }),
	emotionsRule,
	presenceRule("Eyeglasses", func(f entity.FaceDetection) *entity.BoolAttribute { return f.Eyeglasses }),
	presenceRule("Sunglasses", func(f entity.FaceDetection) *entity.BoolAttribute { return f.Sunglasses }),
	presenceRule("EyesOpen", func(f entity.FaceDetection) *entity.BoolAttribute { return f.EyesOpen }),
	presenceRule("MouthOpen", func(f entity.FaceDetection) *entity.BoolAttribute { return f.MouthOpen }),
	presenceRule("Mustache", func(f entity.FaceDetection) *entity.BoolAttribute { return f.Mustache }),
	presenceRule("Beard", func(f entity.FaceDetection) *entity.BoolAttribute { return f.Beard }),
}

// FormatAttributes lists the attributes of face as short attachment fields.
func FormatAttributes(face entity.FaceDetection) []entity.AttachmentField {
	fields := make([]entity.AttachmentField, 0, len(attributeSchema)+len(face.Emotions))
	for _, rule := range attributeSchema {
		fields = append(fields, rule(face)...)
	}
	return fields
}

func confidenceRule(face entity.FaceDetection) []entity.AttachmentField {
	if face.Confidence == nil {
		return nil
	}
	return []entity.AttachmentField{shortField("Confidence", formatPercent(*face.Confidence))}
}

func genderRule(face entity.FaceDetection) []entity.AttachmentField {
	if face.Gender == nil {
		return nil
	}
	return []entity.AttachmentField{shortField(face.Gender.Value, formatPercent(face.Gender.Confidence))}
}

func ageRangeRule(face entity.FaceDetection) []entity.AttachmentField {
	if face.AgeRange == nil {
		return nil
	}
	value := strconv.FormatInt(face.AgeRange.Low, 10) + " - " + strconv.FormatInt(face.AgeRange.High, 10)
	return []entity.AttachmentField{shortField("AgeRange", value)}
}

func emotionsRule(face entity.FaceDetection) []entity.AttachmentField {
	if len(face.Emotions) == 0 {
		return nil
	}
	fields := make([]entity.AttachmentField, 0, len(face.Emotions))
	for _, emotion := range face.Emotions {
		fields = append(fields, shortField(emotion.Type, formatPercent(emotion.Confidence)))
	}
	return fields
}

// presenceRule labels a yes/no attribute as name or "Not name".
func presenceRule(name string, get func(entity.FaceDetection) *entity.BoolAttribute) attributeRule {
	return func(face entity.FaceDetection) []entity.AttachmentField {
		attr := get(face)
		if attr == nil {
			return nil
		}
		title := name
		if !attr.Value {
			title = "Not " + name
		}
		return []entity.AttachmentField{shortField(title, formatPercent(attr.Confidence))}
	}
}

func shortField(title string, value string) entity.AttachmentField {
	return entity.AttachmentField{Title: title, Value: value, Short: true}
}

// formatPercent renders v with exactly one fractional digit, e.g. "97.3 %".
// Rounding works on the shortest decimal form of v, half away from zero, so
// 97.35 becomes 97.4 regardless of its binary representation.
func formatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64) + " %"
	}
	return roundDecimal(strconv.FormatFloat(v, 'f', -1, 64), 1) + " %"
}

func roundDecimal(s string, digits int) string {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	for len(frac) <= digits {
		frac += "0"
	}

	n, _ := new(big.Int).SetString(intPart+frac[:digits], 10)
	if frac[digits] >= '5' {
		n.Add(n, big.NewInt(1))
	}

	out := n.String()
	for len(out) <= digits {
		out = "0" + out
	}
	out = out[:len(out)-digits] + "." + out[len(out)-digits:]

	if negative && strings.Trim(out, "0.") != "" {
		out = "-" + out
	}
	return out
}

package rekognition

import (
	"context"
	"fmt"

	"FaceReporter/internal/entity"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/aws/aws-sdk-go/service/rekognition/rekognitioniface"
)

type IRekognition interface {
	DetectFaces(ctx context.Context, image []byte) ([]entity.FaceDetection, error)
}

type rekognitionClient struct {
	api rekognitioniface.RekognitionAPI
}

func New(sess *session.Session) IRekognition {
	return &rekognitionClient{api: rekognition.New(sess)}
}

func NewWithAPI(api rekognitioniface.RekognitionAPI) IRekognition {
	return &rekognitionClient{api: api}
}

// DetectFaces requests every facial attribute for the faces in image. Faces are
// returned in the order the service reports them.
func (r *rekognitionClient) DetectFaces(ctx context.Context, image []byte) ([]entity.FaceDetection, error) {
	out, err := r.api.DetectFacesWithContext(ctx, &rekognition.DetectFacesInput{
		Image: &rekognition.Image{
			Bytes: image,
		},
		Attributes: aws.StringSlice([]string{rekognition.AttributeAll}),
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition detect faces: %w", err)
	}

	faces := make([]entity.FaceDetection, 0, len(out.FaceDetails))
	for _, detail := range out.FaceDetails {
		if detail == nil {
			continue
		}
		faces = append(faces, toFaceDetection(detail))
	}

	return faces, nil
}

func toFaceDetection(d *rekognition.FaceDetail) entity.FaceDetection {
	face := entity.FaceDetection{
		Confidence: d.Confidence,
	}

	if b := d.BoundingBox; b != nil {
		face.BoundingBox = entity.BoundingBox{
			Left:   aws.Float64Value(b.Left),
			Top:    aws.Float64Value(b.Top),
			Width:  aws.Float64Value(b.Width),
			Height: aws.Float64Value(b.Height),
		}
	}

	if d.Gender != nil {
		face.Gender = &entity.LabeledAttribute{
			Value:      aws.StringValue(d.Gender.Value),
			Confidence: aws.Float64Value(d.Gender.Confidence),
		}
	}

	if d.AgeRange != nil {
		face.AgeRange = &entity.AgeRange{
			Low:  aws.Int64Value(d.AgeRange.Low),
			High: aws.Int64Value(d.AgeRange.High),
		}
	}

	if d.Smile != nil {
		face.Smile = boolAttr(d.Smile.Value, d.Smile.Confidence)
	}
	if d.Emotions != nil {
		face.Emotions = make([]entity.Emotion, 0, len(d.Emotions))
		for _, e := range d.Emotions {
			if e == nil {
				continue
			}
			face.Emotions = append(face.Emotions, entity.Emotion{
				Type:       aws.StringValue(e.Type),
				Confidence: aws.Float64Value(e.Confidence),
			})
		}
	}

	if d.Eyeglasses != nil {
		face.Eyeglasses = boolAttr(d.Eyeglasses.Value, d.Eyeglasses.Confidence)
	}
	if d.Sunglasses != nil {
		face.Sunglasses = boolAttr(d.Sunglasses.Value, d.Sunglasses.Confidence)
	}
	if d.EyesOpen != nil {
		face.EyesOpen = boolAttr(d.EyesOpen.Value, d.EyesOpen.Confidence)
	}
	if d.MouthOpen != nil {
		face.MouthOpen = boolAttr(d.MouthOpen.Value, d.MouthOpen.Confidence)
	}
	if d.Mustache != nil {
		face.Mustache = boolAttr(d.Mustache.Value, d.Mustache.Confidence)
	}
	if d.Beard != nil {
		face.Beard = boolAttr(d.Beard.Value, d.Beard.Confidence)
	}

	return face
}

func boolAttr(value *bool, confidence *float64) *entity.BoolAttribute {
	return &entity.BoolAttribute{
		Value:      aws.BoolValue(value),
		Confidence: aws.Float64Value(confidence),
	}
}

package services

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionFaceDetector backs the optional selfie face check with AWS
// Rekognition.
type RekognitionFaceDetector struct {
	client *rekognition.Client
}

func NewRekognitionFaceDetector(region string) (*RekognitionFaceDetector, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionFaceDetector{client: rekognition.NewFromConfig(cfg)}, nil
}

func (r *RekognitionFaceDetector) CountFaces(ctx context.Context, img []byte) (int, error) {
	out, err := r.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &types.Image{Bytes: img},
		Attributes: []types.Attribute{types.AttributeDefault},
	})
	if err != nil {
		return 0, err
	}
	return len(out.FaceDetails), nil
}

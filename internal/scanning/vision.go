package scanning

import (
	"context"
	"fmt"
	"time"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
)

// Vision implements the Scanner interface using Google Cloud Vision text detection.
// Credentials come from Application Default Credentials.
type Vision struct {
	client *gvision.ImageAnnotatorClient
}

var _ Scanner = (*Vision)(nil)

// NewVision creates a Cloud Vision scanner
func NewVision(ctx context.Context) (*Vision, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating vision client: %w", err)
	}
	return &Vision{client: client}, nil
}

// ReadText runs TEXT_DETECTION and returns the full text annotation
func (v *Vision) ReadText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	finalImageData, _, _, err := prepareImageData(imageData, contentType)
	if err != nil {
		return "", err
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: finalImageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", nil
	}

	res := resp.Responses[0]
	if res.Error != nil {
		return "", fmt.Errorf("vision API error: %s", res.Error.Message)
	}
	if full := res.GetFullTextAnnotation(); full != nil {
		return full.GetText(), nil
	}
	// The first text annotation holds the whole block when there is no full annotation
	if len(res.TextAnnotations) > 0 {
		return res.TextAnnotations[0].GetDescription(), nil
	}
	return "", nil
}

// Close closes the Vision API client
func (v *Vision) Close() error {
	return v.client.Close()
}

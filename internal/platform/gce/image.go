package gce

import (
	"context"
	"fmt"

	"cloud.google.com/go/compute/apiv1/computepb"
)

// GetImageFromFamily resolves the newest non-deprecated image in the given
// image family of an image project, e.g. family "ubuntu-2204-lts" in
// project "ubuntu-os-cloud".
func (c *RealClient) GetImageFromFamily(ctx context.Context, imageProject, family string) (*computepb.Image, error) {
	if imageProject == "" || family == "" {
		return nil, fmt.Errorf("image project and family cannot be empty")
	}

	req := &computepb.GetFromFamilyImageRequest{
		Project: imageProject,
		Family:  family,
	}

	image, err := c.images.GetFromFamily(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image family %s/%s: %w", imageProject, family, err)
	}

	return image, nil
}

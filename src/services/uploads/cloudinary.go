package uploads

import (
	"context"
	"fmt"

	"Backend-UniClub/src/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary hands images to the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cfg config.Cloudinary) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("create cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Driver() string { return "cloudinary" }

func (c *Cloudinary) Upload(ctx context.Context, obj Object) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, obj.Body, uploader.UploadParams{
		Folder:       obj.Folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

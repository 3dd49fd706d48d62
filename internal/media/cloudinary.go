package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// cloudinaryHost is the Cloudinary-backed Host implementation
type cloudinaryHost struct {
	client *cloudinary.Cloudinary
	folder string
	log    zerolog.Logger
}

// NewCloudinaryHost creates a Host from a cloudinary:// URL
func NewCloudinaryHost(cloudinaryURL, folder string, log zerolog.Logger) (Host, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &cloudinaryHost{
		client: client,
		folder: folder,
		log:    log.With().Str("component", "media").Logger(),
	}, nil
}

// Upload sends the file to Cloudinary and returns the hosted asset
func (h *cloudinaryHost) Upload(ctx context.Context, file io.Reader, filename string) (*Asset, error) {
	result, err := h.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: h.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}

	h.log.Debug().
		Str("filename", filename).
		Str("public_id", result.PublicID).
		Msg("Image uploaded")

	return &Asset{URL: result.SecureURL, AssetID: result.PublicID}, nil
}

// Delete removes a hosted asset by its public ID
func (h *cloudinaryHost) Delete(ctx context.Context, assetID string) error {
	if assetID == "" {
		return nil
	}
	result, err := h.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: assetID,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary destroy returned %q", result.Result)
	}
	return nil
}

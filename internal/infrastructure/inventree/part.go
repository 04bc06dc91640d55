package inventree

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/partsync/partsync/internal/domain/inventory"
)

// ---------------------------------------------------------------------------
// Part Operations
// ---------------------------------------------------------------------------

// FindPartByName looks a part up by name, matching exactly client-side
func (c *Client) FindPartByName(ctx context.Context, name string) (*inventory.Part, error) {
	query := url.Values{}
	query.Set("name", name)
	return c.findPart(ctx, query, func(r *partResource) bool {
		return strings.EqualFold(r.Name, name)
	})
}

// FindPartByIPN looks a part up by internal part number
func (c *Client) FindPartByIPN(ctx context.Context, ipn string) (*inventory.Part, error) {
	query := url.Values{}
	query.Set("IPN", ipn)
	return c.findPart(ctx, query, func(r *partResource) bool {
		return strings.EqualFold(r.IPN, ipn)
	})
}

// findPart runs a part list query and returns the first resource the match
// function accepts
func (c *Client) findPart(ctx context.Context, query url.Values, match func(*partResource) bool) (*inventory.Part, error) {
	var resources []partResource
	if err := c.get(ctx, partPath, query, &resources); err != nil {
		return nil, err
	}

	for i := range resources {
		if match(&resources[i]) {
			return convertPart(&resources[i]), nil
		}
	}
	return nil, nil
}

// CreatePart creates a part
func (c *Client) CreatePart(ctx context.Context, part *inventory.Part) (*inventory.Part, error) {
	var created partResource
	if err := c.send(ctx, http.MethodPost, partPath, partPayload(part), &created); err != nil {
		return nil, err
	}
	return convertPart(&created), nil
}

// UploadPartImage attaches a local image file to a part via a multipart PATCH
func (c *Client) UploadPartImage(ctx context.Context, partID int, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("inventree: failed to open image %s: %w", path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	formFile, err := writer.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("inventree: failed to build image upload: %w", err)
	}
	if _, err := io.Copy(formFile, file); err != nil {
		return fmt.Errorf("inventree: failed to read image %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("inventree: failed to build image upload: %w", err)
	}

	_, err = c.doRequest(ctx, http.MethodPatch, detailPath(partPath, partID), nil, writer.FormDataContentType(), &buf)
	return err
}

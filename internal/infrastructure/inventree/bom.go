package inventree

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/partsync/partsync/internal/domain/inventory"
)

// ---------------------------------------------------------------------------
// BOM Operations
// ---------------------------------------------------------------------------

// FindBomItem looks a BOM line up by assembly and component
func (c *Client) FindBomItem(ctx context.Context, assemblyID, componentID int) (*inventory.BomItem, error) {
	query := url.Values{}
	query.Set("part", strconv.Itoa(assemblyID))
	query.Set("sub_part", strconv.Itoa(componentID))

	var resources []bomItemResource
	if err := c.get(ctx, bomPath, query, &resources); err != nil {
		return nil, err
	}

	if len(resources) == 0 {
		return nil, nil
	}
	return convertBomItem(&resources[0]), nil
}

// CreateBomItem creates a BOM line
func (c *Client) CreateBomItem(ctx context.Context, item *inventory.BomItem) (*inventory.BomItem, error) {
	var created bomItemResource
	if err := c.send(ctx, http.MethodPost, bomPath, bomItemPayload(item), &created); err != nil {
		return nil, err
	}
	return convertBomItem(&created), nil
}

package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dwikikusuma/food-storefront/internal/cart/domain"
)

const SnapshotVersion = 1

var ErrSnapshotDecode = errors.New("cart snapshot undecodable")

type snapshot struct {
	Version int             `json:"version"`
	Entries []snapshotEntry `json:"entries"`
}

type snapshotEntry struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	UnitPrice         int64           `json:"unit_price"`
	AvailableQuantity int64           `json:"available_quantity"`
	Images            []snapshotImage `json:"images"`
	PurchaseQuantity  int64           `json:"purchase_quantity"`
}

type snapshotImage struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

func EncodeSnapshot(cart domain.Cart) ([]byte, error) {
	s := snapshot{
		Version: SnapshotVersion,
		Entries: make([]snapshotEntry, 0, len(cart.Entries)),
	}
	for _, e := range cart.Entries {
		images := make([]snapshotImage, 0, len(e.Images))
		for _, img := range e.Images {
			images = append(images, snapshotImage{ID: img.ID, URL: img.URL})
		}
		s.Entries = append(s.Entries, snapshotEntry{
			ID:                e.ID,
			Name:              e.Name,
			Description:       e.Description,
			UnitPrice:         e.UnitPrice,
			AvailableQuantity: e.AvailableQuantity,
			Images:            images,
			PurchaseQuantity:  e.PurchaseQuantity,
		})
	}
	return json.Marshal(s)
}

// DecodeSnapshot rejects anything that is not a version 1 snapshot whose
// entries already satisfy the cart invariants. Every failure wraps
// ErrSnapshotDecode.
func DecodeSnapshot(data []byte) (domain.Cart, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s snapshot
	if err := dec.Decode(&s); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %v", ErrSnapshotDecode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.Cart{}, fmt.Errorf("%w: trailing data", ErrSnapshotDecode)
	}
	if s.Version != SnapshotVersion {
		return domain.Cart{}, fmt.Errorf("%w: version %d", ErrSnapshotDecode, s.Version)
	}

	seen := make(map[int64]struct{}, len(s.Entries))
	entries := make([]domain.CartEntry, 0, len(s.Entries))
	for i, e := range s.Entries {
		if e.ID <= 0 {
			return domain.Cart{}, fmt.Errorf("%w: entry %d: invalid id %d", ErrSnapshotDecode, i, e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return domain.Cart{}, fmt.Errorf("%w: entry %d: duplicate id %d", ErrSnapshotDecode, i, e.ID)
		}
		seen[e.ID] = struct{}{}

		if e.UnitPrice < 0 {
			return domain.Cart{}, fmt.Errorf("%w: entry %d: negative price", ErrSnapshotDecode, i)
		}
		if e.PurchaseQuantity < 1 || e.PurchaseQuantity > e.AvailableQuantity {
			return domain.Cart{}, fmt.Errorf("%w: entry %d: quantity %d outside [1,%d]",
				ErrSnapshotDecode, i, e.PurchaseQuantity, e.AvailableQuantity)
		}

		var images []domain.Image
		if len(e.Images) > 0 {
			images = make([]domain.Image, 0, len(e.Images))
			for _, img := range e.Images {
				images = append(images, domain.Image{ID: img.ID, URL: img.URL})
			}
		}

		entries = append(entries, domain.CartEntry{
			MenuItem: domain.MenuItem{
				ID:                e.ID,
				Name:              e.Name,
				Description:       e.Description,
				UnitPrice:         e.UnitPrice,
				AvailableQuantity: e.AvailableQuantity,
				Images:            images,
			},
			PurchaseQuantity: e.PurchaseQuantity,
		})
	}

	if len(entries) == 0 {
		return domain.Cart{}, nil
	}
	return domain.Cart{Entries: entries}, nil
}

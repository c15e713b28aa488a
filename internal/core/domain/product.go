package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrForbidden = errors.New("access forbidden")

// ImageRef holds a product image as either a stored-file URL or an inline
// base64 data URI. Exactly one arm is populated at a time; the setters keep
// that invariant.
type ImageRef struct {
	URL    string
	Inline string
}

// SetURL makes the stored-file arm active and clears the inline arm.
func (i *ImageRef) SetURL(url string) {
	i.URL = url
	i.Inline = ""
}

// SetInline makes the inline arm active and clears the stored-file arm.
func (i *ImageRef) SetInline(data string) {
	i.Inline = data
	i.URL = ""
}

// IsZero reports whether no image is set.
func (i ImageRef) IsZero() bool {
	return i.URL == "" && i.Inline == ""
}

// Product is the core listing aggregate. OwnerID is a lookup key into the
// users collection, not a containment edge: deleting the owner leaves the
// product in place with an unresolvable reference.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	Image       ImageRef
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

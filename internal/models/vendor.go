package models

import "time"

// VendorProfile is a service business listed on the marketplace (DJ,
// decorator, venue, caterer, photographer and so on). Created unverified
// during onboarding; only staff or admin moderation flips Verified.
type VendorProfile struct {
	ID              int64
	OwnerUID        string   // UID of the owning user account
	BusinessName    string
	Slug            string   // URL-safe unique identifier derived from the business name
	Category        string
	City            string
	Bio             string
	WhatsappLink    string
	PrimaryImageURL string
	GalleryImages   []string // Ordered; first entry is the cover image
	PortfolioDocs   []string
	Verified        bool
	Rating          float64
	ReviewCount     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CoverImage returns the image shown on listing cards: the first gallery
// image when present, else the primary image.
func (v *VendorProfile) CoverImage() string {
	if len(v.GalleryImages) > 0 {
		return v.GalleryImages[0]
	}
	return v.PrimaryImageURL
}

// VendorFilter narrows public vendor listings.
type VendorFilter struct {
	Category string
	City     string
}

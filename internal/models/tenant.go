package models

import "time"

// Tenant represents a registered API consumer with usage quota
type Tenant struct {
	ID         string    `json:"id" badgerhold:"key"`
	Name       string    `json:"name"`
	Email      string    `json:"email" validate:"required,email"`
	APIKey     string    `json:"api_key" badgerholdIndex:"APIKey"`
	BrandKits  []string  `json:"brand_kits"`
	CreatedAt  time.Time `json:"created_at"`
	IsActive   bool      `json:"is_active"`
	UsageQuota int       `json:"usage_quota"`
	UsageCount int       `json:"usage_count"`
}

// QuotaExceeded reports whether the tenant has used up its quota
func (t *Tenant) QuotaExceeded() bool {
	return t.UsageQuota > 0 && t.UsageCount >= t.UsageQuota
}

// TenantCreateRequest is the inbound tenant registration payload
type TenantCreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// BrandKit carries per-tenant brand customization applied to plans and
// composition. Presence of a brand kit on a request disables plan caching.
type BrandKit struct {
	ID             string    `json:"id" badgerhold:"key"`
	TenantID       string    `json:"tenant_id" badgerholdIndex:"TenantID"`
	Name           string    `json:"name" yaml:"name"`
	PrimaryColor   string    `json:"primary_color" yaml:"primary_color"`
	SecondaryColor string    `json:"secondary_color" yaml:"secondary_color"`
	AccentColor    string    `json:"accent_color" yaml:"accent_color"`
	LogoPath       string    `json:"logo_path,omitempty" yaml:"logo_path"`
	FontFamily     string    `json:"font_family" yaml:"font_family"`
	Tagline        string    `json:"tagline,omitempty" yaml:"tagline"`
	CreatedAt      time.Time `json:"created_at" yaml:"-"`
}

// ApplyDefaults fills unset brand kit fields
func (k *BrandKit) ApplyDefaults() {
	if k.PrimaryColor == "" {
		k.PrimaryColor = "#000000"
	}
	if k.SecondaryColor == "" {
		k.SecondaryColor = "#ffffff"
	}
	if k.AccentColor == "" {
		k.AccentColor = "#FFD700"
	}
	if k.FontFamily == "" {
		k.FontFamily = "Arial"
	}
}

// Copyright (c) 2026 PressArt. All rights reserved.

/*
Package media turns catalog image identifiers into deliverable URLs.

The CDN is a strategy chosen once from configuration and passed to whoever
needs URLs; there is no package-level switch.

Strategies:

  - Local: files served by the web app itself ("/Images/<path>.avif").
  - ImageKit: "https://ik.imagekit.io/<endpoint>/<path>?tr=...".
  - Cloudinary: "https://res.cloudinary.com/<cloud>/image/upload/<t>/<file>.avif".
*/
package media

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pressart/storefront/internal/platform/config"
)

// Strategy names accepted by IMAGE_CDN.
const (
	StrategyLocal      = "local"
	StrategyImageKit   = "imagekit"
	StrategyCloudinary = "cloudinary"
)

// Auto is the "let the CDN decide" value for string transform options.
const Auto = "auto"

// Transform describes optional image transformations. Zero values (and
// [Auto]) are omitted from the generated URL.
type Transform struct {
	Width   int
	Height  int
	Quality string
	Format  string
	Crop    string
	Focus   string
}

// URLBuilder builds the URL of an image identifier (storage path without
// extension) under a transform.
type URLBuilder interface {
	URL(path string, transform Transform) string
	Name() string
}

// New selects the URL strategy named by cfg.ImageCDN.
func New(cfg *config.Config) (URLBuilder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.ImageCDN)) {
	case StrategyLocal:
		return NewLocal(cfg.LocalImageDir, cfg.LocalImageExt), nil

	case StrategyImageKit:
		if cfg.ImageKitURLEndpoint == "" {
			return nil, fmt.Errorf("media: IMAGEKIT_URL_ENDPOINT is required for the imagekit strategy")
		}
		return NewImageKit(cfg.ImageKitURLEndpoint), nil

	case StrategyCloudinary, "":
		if cfg.CloudinaryCloudName == "" {
			return nil, fmt.Errorf("media: CLOUDINARY_CLOUD_NAME is required for the cloudinary strategy")
		}
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.LocalImageExt), nil

	default:
		return nil, fmt.Errorf("media: unknown IMAGE_CDN %q", cfg.ImageCDN)
	}
}

// # Responsive Sets

// Variant is one entry of a responsive image set.
type Variant struct {
	Size  string `json:"size"`
	Width int    `json:"width"`
	URL   string `json:"url"`
}

// ResponsiveSizes are the named widths offered for every image, smallest first.
var ResponsiveSizes = []struct {
	Name  string
	Width int
}{
	{"thumbnail", 150},
	{"small", 300},
	{"medium", 600},
	{"large", 900},
	{"xlarge", 1200},
}

// Responsive returns one URL per entry of [ResponsiveSizes].
func Responsive(builder URLBuilder, path string) []Variant {
	variants := make([]Variant, len(ResponsiveSizes))
	for index, size := range ResponsiveSizes {
		variants[index] = Variant{
			Size:  size.Name,
			Width: size.Width,
			URL:   builder.URL(path, Transform{Width: size.Width}),
		}
	}
	return variants
}

// set reports whether a string option should appear in a URL.
func set(value, defaultValue string) bool {
	return value != "" && value != Auto && value != defaultValue
}

// params renders the enabled options as key+sep+value pairs in fixed order.
func params(transform Transform, sep string, keys [6]string, defaultCrop string) []string {
	var parts []string
	if transform.Width > 0 {
		parts = append(parts, keys[0]+sep+strconv.Itoa(transform.Width))
	}
	if transform.Height > 0 {
		parts = append(parts, keys[1]+sep+strconv.Itoa(transform.Height))
	}
	if set(transform.Quality, "") {
		parts = append(parts, keys[2]+sep+transform.Quality)
	}
	if set(transform.Format, "") {
		parts = append(parts, keys[3]+sep+transform.Format)
	}
	if set(transform.Crop, defaultCrop) {
		parts = append(parts, keys[4]+sep+transform.Crop)
	}
	if set(transform.Focus, "") {
		parts = append(parts, keys[5]+sep+transform.Focus)
	}
	return parts
}

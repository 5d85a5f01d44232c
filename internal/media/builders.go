// Copyright (c) 2026 PressArt. All rights reserved.

package media

import (
	"path"
	"strings"
)

// # Local

// Local serves images from the web app's own static directory. Transforms
// are ignored; the files are pre-sized.
type Local struct {
	dir string
	ext string
}

// NewLocal builds a [Local] strategy rooted at dir (e.g. "/Images").
func NewLocal(dir, ext string) *Local {
	return &Local{dir: strings.TrimRight(dir, "/"), ext: ext}
}

func (local *Local) Name() string { return StrategyLocal }

func (local *Local) URL(imagePath string, _ Transform) string {
	return local.dir + "/" + strings.TrimLeft(imagePath, "/") + local.ext
}

// # ImageKit

const imageKitBase = "https://ik.imagekit.io/"

// ImageKit addresses images by their full folder path; transforms go in "tr".
type ImageKit struct {
	endpoint string
}

// NewImageKit accepts either the endpoint id or a full "https://ik.imagekit.io/<id>" URL.
func NewImageKit(endpoint string) *ImageKit {
	endpoint = strings.TrimPrefix(endpoint, imageKitBase)
	return &ImageKit{endpoint: strings.Trim(endpoint, "/")}
}

func (imageKit *ImageKit) Name() string { return StrategyImageKit }

func (imageKit *ImageKit) URL(imagePath string, transform Transform) string {
	url := imageKitBase + imageKit.endpoint + "/" + strings.TrimLeft(imagePath, "/")

	parts := params(transform, "-", [6]string{"w", "h", "q", "f", "c", "fo"}, "at_max")
	if len(parts) > 0 {
		url += "?tr=" + strings.Join(parts, ",")
	}
	return url
}

// # Cloudinary

// Cloudinary addresses images by public id, which is the file's base name:
// the folders were flattened on upload.
type Cloudinary struct {
	cloudName string
	ext       string
}

// NewCloudinary builds a [Cloudinary] strategy for a cloud name.
func NewCloudinary(cloudName, ext string) *Cloudinary {
	return &Cloudinary{cloudName: cloudName, ext: ext}
}

func (cloudinary *Cloudinary) Name() string { return StrategyCloudinary }

func (cloudinary *Cloudinary) URL(imagePath string, transform Transform) string {
	url := "https://res.cloudinary.com/" + cloudinary.cloudName + "/image/upload"

	parts := params(transform, "_", [6]string{"w", "h", "q", "f", "c", "g"}, "fill")
	if len(parts) > 0 {
		url += "/" + strings.Join(parts, ",")
	}
	return url + "/" + path.Base(imagePath) + cloudinary.ext
}

// Copyright (c) 2026 PressArt. All rights reserved.

package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressart/storefront/internal/media"
	"github.com/pressart/storefront/internal/platform/config"
)

const starryNight = "paintings/21-the-starry-night-by-vincent-van-gogh"

/*
TestBuilders_URL checks every strategy with and without transforms.
*/
func TestBuilders_URL(t *testing.T) {
	local := media.NewLocal("/Images/", ".avif")
	imageKit := media.NewImageKit("https://ik.imagekit.io/pressart/")
	cloudinary := media.NewCloudinary("djdbzgoxk", ".avif")

	tests := []struct {
		name      string
		builder   media.URLBuilder
		transform media.Transform
		want      string
	}{
		{"local_plain", local, media.Transform{}, "/Images/" + starryNight + ".avif"},
		{"local_ignores_transform", local, media.Transform{Width: 300}, "/Images/" + starryNight + ".avif"},

		{"imagekit_plain", imageKit, media.Transform{}, "https://ik.imagekit.io/pressart/" + starryNight},
		{
			"imagekit_transform", imageKit,
			media.Transform{Width: 600, Height: 400, Quality: "80", Format: "webp", Crop: "at_max", Focus: "center"},
			"https://ik.imagekit.io/pressart/" + starryNight + "?tr=w-600,h-400,q-80,f-webp,fo-center",
		},

		{"cloudinary_plain", cloudinary, media.Transform{}, "https://res.cloudinary.com/djdbzgoxk/image/upload/21-the-starry-night-by-vincent-van-gogh.avif"},
		{
			"cloudinary_transform", cloudinary,
			media.Transform{Width: 150, Quality: media.Auto, Crop: "thumb", Focus: "face"},
			"https://res.cloudinary.com/djdbzgoxk/image/upload/w_150,c_thumb,g_face/21-the-starry-night-by-vincent-van-gogh.avif",
		},
		{
			"cloudinary_default_crop_omitted", cloudinary,
			media.Transform{Height: 90, Crop: "fill"},
			"https://res.cloudinary.com/djdbzgoxk/image/upload/h_90/21-the-starry-night-by-vincent-van-gogh.avif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.builder.URL(starryNight, tt.transform))
		})
	}
}

/*
TestResponsive produces the five named widths in ascending order.
*/
func TestResponsive(t *testing.T) {
	variants := media.Responsive(media.NewCloudinary("cloud", ".avif"), "space/SPACE_001")

	require.Len(t, variants, 5)

	widths := make([]int, 0, len(variants))
	for _, variant := range variants {
		widths = append(widths, variant.Width)
	}
	assert.Equal(t, []int{150, 300, 600, 900, 1200}, widths)
	assert.Equal(t, "thumbnail", variants[0].Size)
	assert.Equal(t, "https://res.cloudinary.com/cloud/image/upload/w_1200/SPACE_001.avif", variants[4].URL)
}

/*
TestNew selects the strategy from configuration.
*/
func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{"local", config.Config{ImageCDN: "local", LocalImageDir: "/Images", LocalImageExt: ".avif"}, media.StrategyLocal, false},
		{"imagekit", config.Config{ImageCDN: "ImageKit", ImageKitURLEndpoint: "pressart"}, media.StrategyImageKit, false},
		{"imagekit_missing_endpoint", config.Config{ImageCDN: "imagekit"}, "", true},
		{"cloudinary", config.Config{ImageCDN: "cloudinary", CloudinaryCloudName: "djdbzgoxk"}, media.StrategyCloudinary, false},
		{"cloudinary_missing_cloud", config.Config{ImageCDN: "cloudinary"}, "", true},
		{"unknown", config.Config{ImageCDN: "s3"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder, err := media.New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, builder.Name())
		})
	}
}

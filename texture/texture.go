// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture loads images into OpenGL 2D texture objects.
//
// PNG and JPEG files decode out of the box; BMP, TIFF and WebP support
// comes from the x/image decoders. Anything else registered with
// image.RegisterFormat works too.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/gogpu/glh"
	"github.com/gogpu/glh/internal/glerr"
)

var (
	// ErrNilImage is returned when FromImage is given a nil image.
	ErrNilImage = errors.New("texture: nil image")

	// ErrEmptyImage is returned when the source image has no pixels.
	ErrEmptyImage = errors.New("texture: empty image")
)

// Filter selects a texture sampling filter. The values are the
// corresponding OpenGL constants.
type Filter int32

const (
	Nearest              Filter = gl.NEAREST
	Linear               Filter = gl.LINEAR
	NearestMipmapNearest Filter = gl.NEAREST_MIPMAP_NEAREST
	LinearMipmapNearest  Filter = gl.LINEAR_MIPMAP_NEAREST
	NearestMipmapLinear  Filter = gl.NEAREST_MIPMAP_LINEAR
	LinearMipmapLinear   Filter = gl.LINEAR_MIPMAP_LINEAR
)

// Wrap selects how texture coordinates outside [0, 1] sample.
type Wrap int32

const (
	Repeat         Wrap = gl.REPEAT
	MirroredRepeat Wrap = gl.MIRRORED_REPEAT
	ClampToEdge    Wrap = gl.CLAMP_TO_EDGE
)

// Config holds sampling and upload parameters.
type Config struct {
	// MinFilter is the minification filter.
	// Default: LinearMipmapLinear
	MinFilter Filter

	// MagFilter is the magnification filter. Only Nearest and Linear
	// are meaningful when magnifying.
	// Default: Linear
	MagFilter Filter

	// WrapS and WrapT are the wrap modes for the horizontal and
	// vertical texture coordinates.
	// Default: Repeat
	WrapS Wrap
	WrapT Wrap

	// GenerateMipmaps builds the mipmap chain after upload. The
	// default MinFilter samples mipmaps, so without them the texture
	// would be incomplete and sample black.
	// Default: true
	GenerateMipmaps bool

	// FlipY flips the image vertically during upload. Image files
	// store the first row at the top; OpenGL texture coordinates put
	// row zero at the bottom.
	// Default: true
	FlipY bool
}

// DefaultConfig returns the configuration the demos use: repeat
// wrapping, trilinear minification with mipmaps, and vertical flip.
func DefaultConfig() Config {
	return Config{
		MinFilter:       LinearMipmapLinear,
		MagFilter:       Linear,
		WrapS:           Repeat,
		WrapT:           Repeat,
		GenerateMipmaps: true,
		FlipY:           true,
	}
}

// Validate checks if the configuration is valid and returns an error
// if not.
func (c *Config) Validate() error {
	switch c.MagFilter {
	case Nearest, Linear:
	default:
		return fmt.Errorf("texture: mag filter %#x is not Nearest or Linear", int32(c.MagFilter))
	}
	switch c.MinFilter {
	case Nearest, Linear:
	case NearestMipmapNearest, LinearMipmapNearest, NearestMipmapLinear, LinearMipmapLinear:
		if !c.GenerateMipmaps {
			return fmt.Errorf("texture: min filter %#x samples mipmaps, but GenerateMipmaps is false", int32(c.MinFilter))
		}
	default:
		return fmt.Errorf("texture: min filter %#x is not a filter", int32(c.MinFilter))
	}
	switch c.WrapS {
	case Repeat, MirroredRepeat, ClampToEdge:
	default:
		return fmt.Errorf("texture: wrap S %#x is not a wrap mode", int32(c.WrapS))
	}
	switch c.WrapT {
	case Repeat, MirroredRepeat, ClampToEdge:
	default:
		return fmt.Errorf("texture: wrap T %#x is not a wrap mode", int32(c.WrapT))
	}
	return nil
}

// Texture owns an OpenGL 2D texture object.
//
// The zero value is not usable; obtain one from [Load] or [FromImage].
type Texture struct {
	id     uint32
	width  int
	height int
}

// Load reads an image file and uploads it as a 2D texture.
func Load(path string, cfg Config) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	glh.Logger().Debug("image decoded", "path", path, "format", format)
	return FromImage(img, cfg)
}

// FromImage uploads an in-memory image as a 2D texture. The image is
// converted to tightly packed RGBA, optionally flipped, and downscaled
// with a Catmull-Rom kernel if it exceeds the driver's maximum texture
// size.
func FromImage(img image.Image, cfg Config) (*Texture, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	rgba := toRGBA(img, cfg.FlipY)

	var maxSize int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxSize)
	if limit := int(maxSize); limit > 0 {
		b := rgba.Bounds()
		if b.Dx() > limit || b.Dy() > limit {
			glh.Logger().Debug("downscaling oversized image",
				"width", b.Dx(), "height", b.Dy(), "max", limit)
			rgba = downscale(rgba, limit)
		}
	}

	glerr.Clear()
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int32(cfg.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int32(cfg.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int32(cfg.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int32(cfg.MagFilter))

	width, height := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	if cfg.GenerateMipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glerr.Check("upload"); err != nil {
		gl.DeleteTextures(1, &id)
		return nil, fmt.Errorf("texture: %w", err)
	}

	glh.Logger().Debug("texture uploaded",
		"id", id, "width", width, "height", height, "mipmaps", cfg.GenerateMipmaps)
	return &Texture{id: id, width: width, height: height}, nil
}

// Checkerboard renders a two-color checker pattern. The demos fall
// back to it when no texture file is configured.
func Checkerboard(width, height, cell int, a, b color.Color) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}

// toRGBA copies src into a tightly packed RGBA image anchored at the
// origin, optionally flipping it vertically.
func toRGBA(src image.Image, flipY bool) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	if flipY {
		flipVertical(dst)
	}
	return dst
}

func flipVertical(img *image.RGBA) {
	height := img.Bounds().Dy()
	tmp := make([]byte, img.Stride)
	for y := 0; y < height/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(height-1-y)*img.Stride : (height-y)*img.Stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// downscale fits img inside limit x limit, preserving aspect ratio.
func downscale(img *image.RGBA, limit int) *image.RGBA {
	b := img.Bounds()
	scale := float64(limit) / float64(max(b.Dx(), b.Dy()))
	width := max(int(float64(b.Dx())*scale), 1)
	height := max(int(float64(b.Dy())*scale), 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Bind makes the texture current on the given texture unit. Pass the
// same unit index to the sampler uniform with Program.SetInt.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Unbind clears the 2D texture binding on the active unit.
func (t *Texture) Unbind() {
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// ID returns the raw OpenGL texture object name, or 0 after Delete.
func (t *Texture) ID() uint32 {
	return t.id
}

// Width returns the stored texture width in texels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the stored texture height in texels.
func (t *Texture) Height() int {
	return t.height
}

// Delete destroys the texture object. Idempotent.
func (t *Texture) Delete() {
	if t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	glh.Logger().Debug("texture deleted", "id", t.id)
	t.id = 0
}

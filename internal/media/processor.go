package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 1024
	jpegQuality         = 85
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// ImageProcessor downscales uploads so the longest edge fits maxDimension,
// re-encoding as JPEG (or PNG when the source was PNG). WebP and GIF inputs
// decode via the registered decoders and come back as JPEG.
type ImageProcessor struct {
	maxDimension int
}

func NewImageProcessor(maxDimension int) *ImageProcessor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &ImageProcessor{maxDimension: maxDimension}
}

func (p *ImageProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if maxDimension <= 0 {
		maxDimension = p.maxDimension
	}

	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDimension && height <= maxDimension {
		return &Result{Bytes: data, ContentType: normalizeContentType(upload.ContentType, format), Resized: false}, nil
	}

	scale := float64(maxDimension) / float64(width)
	if height > width {
		scale = float64(maxDimension) / float64(height)
	}
	dstW := int(float64(width) * scale)
	dstH := int(float64(height) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	contentType := "image/jpeg"
	if format == "png" {
		contentType = "image/png"
		if err := png.Encode(&buf, dst); err != nil {
			return nil, fmt.Errorf("media: encode png: %w", err)
		}
	} else {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("media: encode jpeg: %w", err)
		}
	}

	return &Result{Bytes: buf.Bytes(), ContentType: contentType, Resized: true}, nil
}

func normalizeContentType(declared, format string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != "" {
		return declared
	}
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

var _ Processor = (*ImageProcessor)(nil)

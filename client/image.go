package client

import (
	"context"
	"io"
	"time"

	"github.com/d8agroup/python-metalayer/client/internal/api"
	"github.com/d8agroup/python-metalayer/client/internal/types"
)

// ImageLayer groups the image analysis functions. Obtain it with
// Client.Image.
//
// Every method reads the image from r as-is; a seekable r (such as an
// *os.File) is rewound first. r is never closed.
type ImageLayer struct{ c *Client }

// Color returns every color of the image as an RGB value with its share.
func (i *ImageLayer) Color(ctx context.Context, r io.Reader) (colors []Color, err error) {
	defer func(start time.Time) { observe(types.LayerImage, "color", start, err) }(time.Now())
	return api.Color(ctx, i.c.http, i.c.endpoint, r)
}

// Histogram returns the distribution of colors in the image.
func (i *ImageLayer) Histogram(ctx context.Context, r io.Reader) (h Histogram, err error) {
	defer func(start time.Time) { observe(types.LayerImage, "histogram", start, err) }(time.Now())
	return api.Histogram(ctx, i.c.http, i.c.endpoint, r)
}

// OCR attempts to read text from an image document.
func (i *ImageLayer) OCR(ctx context.Context, r io.Reader) (res *OCRResult, err error) {
	defer func(start time.Time) { observe(types.LayerImage, "ocr", start, err) }(time.Now())
	return api.OCR(ctx, i.c.http, i.c.endpoint, r)
}

// Faces locates human faces in the image, positioned relative to it.
func (i *ImageLayer) Faces(ctx context.Context, r io.Reader) (objs []DetectedObject, err error) {
	defer func(start time.Time) { observe(types.LayerImage, "faces", start, err) }(time.Now())
	return api.Faces(ctx, i.c.http, i.c.endpoint, r)
}

// Bundle runs color, histogram, OCR and face detection in one request.
func (i *ImageLayer) Bundle(ctx context.Context, r io.Reader) (b *ImageBundle, err error) {
	defer func(start time.Time) { observe(types.LayerImage, "bundle", start, err) }(time.Now())
	return api.ImageBundle(ctx, i.c.http, i.c.endpoint, r)
}

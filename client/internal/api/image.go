package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/d8agroup/python-metalayer/client/internal/types"
)

// Color returns the colors of an image as RGB values with their share.
func Color(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, image io.Reader) ([]types.Color, error) {
	r, err := postImage(ctx, httpClient, ep, types.LayerImage, "color", image)
	if err != nil {
		return nil, err
	}
	var colors []types.Color
	if err := r.decodeField(types.LayerImage, r.layers.Image, types.FieldColors, &colors); err != nil {
		return nil, err
	}
	return colors, nil
}

// Histogram returns the color distribution of an image.
func Histogram(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, image io.Reader) (types.Histogram, error) {
	r, err := postImage(ctx, httpClient, ep, types.LayerImage, "histogram", image)
	if err != nil {
		return nil, err
	}
	var hist types.Histogram
	if err := r.decodeField(types.LayerImage, r.layers.Image, types.FieldHistogram, &hist); err != nil {
		return nil, err
	}
	return hist, nil
}

// OCR reads text out of an image document. The service answers in the data
// layer section.
func OCR(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, image io.Reader) (*types.OCRResult, error) {
	r, err := postImage(ctx, httpClient, ep, types.LayerImage, "ocr", image)
	if err != nil {
		return nil, err
	}
	var res types.OCRResult
	if err := r.decodeSection(types.LayerData, r.layers.Data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Faces locates objects (human faces) in an image.
func Faces(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, image io.Reader) ([]types.DetectedObject, error) {
	r, err := postImage(ctx, httpClient, ep, types.LayerImage, "faces", image)
	if err != nil {
		return nil, err
	}
	var objs []types.DetectedObject
	if err := r.decodeSection(types.LayerObjectDetection, r.layers.ObjectDetection, (*objectList)(&objs)); err != nil {
		return nil, err
	}
	return objs, nil
}

// ImageBundle runs color, histogram, OCR and object detection in one request.
// OCR and objects are filled only when the service includes their sections.
func ImageBundle(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, image io.Reader) (*types.ImageBundle, error) {
	r, err := postImage(ctx, httpClient, ep, types.LayerImage, "bundle", image)
	if err != nil {
		return nil, err
	}
	var b types.ImageBundle
	if err := r.decodeSection(types.LayerImage, r.layers.Image, &b); err != nil {
		return nil, err
	}
	if !isEmpty(r.layers.Data) {
		var ocr types.OCRResult
		if err := r.decodeSection(types.LayerData, r.layers.Data, &ocr); err != nil {
			return nil, err
		}
		b.OCR = &ocr
	}
	if !isEmpty(r.layers.ObjectDetection) {
		if err := r.decodeSection(types.LayerObjectDetection, r.layers.ObjectDetection, (*objectList)(&b.Objects)); err != nil {
			return nil, err
		}
	}
	return &b, nil
}

// objectList decodes either a bare list of objects or an object wrapping
// the list under "objects" or "faces".
type objectList []types.DetectedObject

func (l *objectList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, (*[]types.DetectedObject)(l))
	}
	var wrapped struct {
		Objects []types.DetectedObject `json:"objects"`
		Faces   []types.DetectedObject `json:"faces"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	*l = append(wrapped.Objects, wrapped.Faces...)
	return nil
}

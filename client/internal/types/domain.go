package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ------------------------------
// Data layer results
// ------------------------------

// Sentiment is the tone of a text. Score ranges from -5.0 (very negative)
// to 5.0 (very positive); 0 means neutral or undetermined.
type Sentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label,omitempty"`
}

// Polarity reports "positive", "negative" or "neutral" from the sign of Score.
func (s Sentiment) Polarity() string {
	switch {
	case s.Score > 0:
		return "positive"
	case s.Score < 0:
		return "negative"
	default:
		return "neutral"
	}
}

// UnmarshalJSON accepts either a bare number or a {score,label} object.
func (s *Sentiment) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] != '{' {
		var score float64
		if err := json.Unmarshal(b, &score); err != nil {
			return fmt.Errorf("sentiment: %w", err)
		}
		*s = Sentiment{Score: score}
		return nil
	}
	type plain Sentiment
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("sentiment: %w", err)
	}
	*s = Sentiment(p)
	return nil
}

// Tag is a keyword extracted from a text.
type Tag struct {
	Keyword string   `json:"keyword"`
	Weight  *float64 `json:"weight,omitempty"`
}

// UnmarshalJSON accepts a bare string or an object keyed by "keyword" or "tag".
func (t *Tag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var kw string
		if err := json.Unmarshal(b, &kw); err != nil {
			return fmt.Errorf("tag: %w", err)
		}
		*t = Tag{Keyword: kw}
		return nil
	}
	var raw struct {
		Keyword string   `json:"keyword"`
		Tag     string   `json:"tag"`
		Weight  *float64 `json:"weight"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("tag: %w", err)
	}
	t.Keyword = raw.Keyword
	if t.Keyword == "" {
		t.Keyword = raw.Tag
	}
	t.Weight = raw.Weight
	return nil
}

// Location is a place a text refers to. Coordinates are optional.
type Location struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// UnmarshalJSON accepts a bare place name or an object; "lng" and
// "longitude"/"latitude" are read as aliases.
func (l *Location) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return fmt.Errorf("location: %w", err)
		}
		*l = Location{Name: name}
		return nil
	}
	var raw struct {
		Name      string   `json:"name"`
		Lat       *float64 `json:"lat"`
		Latitude  *float64 `json:"latitude"`
		Lon       *float64 `json:"lon"`
		Lng       *float64 `json:"lng"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	l.Name = raw.Name
	l.Lat = firstNonNil(raw.Lat, raw.Latitude)
	l.Lon = firstNonNil(raw.Lon, raw.Lng, raw.Longitude)
	return nil
}

func firstNonNil(vs ...*float64) *float64 {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}

// Bundle is the combined result of sentiment, tagging and locations.
// A section the service omits is left at its zero value.
type Bundle struct {
	Sentiment Sentiment  `json:"sentiment"`
	Tags      []Tag      `json:"tags"`
	Locations []Location `json:"locations"`
}

// ------------------------------
// Image layer results
// ------------------------------

// RGB is a red/green/blue triple.
type RGB [3]int

// UnmarshalJSON accepts [r,g,b] or {"r":..,"g":..,"b":..}.
func (c *RGB) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var obj struct{ R, G, B int }
		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("rgb: %w", err)
		}
		*c = RGB{obj.R, obj.G, obj.B}
		return nil
	}
	var arr []int
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("rgb: %w", err)
	}
	if len(arr) != 3 {
		return fmt.Errorf("rgb: expected 3 components, got %d", len(arr))
	}
	*c = RGB{arr[0], arr[1], arr[2]}
	return nil
}

// Hex renders the color as #rrggbb.
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]) }

// Color is one entry of an image's palette.
type Color struct {
	RGB        RGB     `json:"rgb"`
	Percentage float64 `json:"percentage"`
}

// Histogram maps a color bucket to the number of samples in it.
type Histogram map[string]int

// OCRResult holds text read from an image.
type OCRResult struct {
	Text string `json:"text"`
}

// UnmarshalJSON accepts a bare string or a {"text": ...} object.
func (o *OCRResult) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &o.Text)
	}
	type plain OCRResult
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("ocr: %w", err)
	}
	*o = OCRResult(p)
	return nil
}

// DetectedObject is an object (currently a face) found in an image,
// positioned relative to the document.
type DetectedObject struct {
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImageBundle is the combined result of color, histogram, OCR and object
// detection for one image.
type ImageBundle struct {
	Colors    []Color          `json:"colors"`
	Histogram Histogram        `json:"histogram"`
	OCR       *OCRResult       `json:"ocr,omitempty"`
	Objects   []DetectedObject `json:"objects,omitempty"`
}

// ------------------------------
// Batch analysis
// ------------------------------

// Document is one input of a batch analysis.
type Document struct {
	ID   string
	Text string
}

// BatchResult pairs a Document ID with its bundle or the error that ended it.
type BatchResult struct {
	ID       string
	Bundle   *Bundle
	Err      error
	Attempts int
}

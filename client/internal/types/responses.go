package types

import "encoding/json"

// Layer names used in URLs and as response envelope keys.
const (
	LayerData            = "datalayer"
	LayerImage           = "imglayer"
	LayerObjectDetection = "objectdetection"
)

// StatusSuccess is the envelope status of a successful call.
const StatusSuccess = "success"

// Envelope is the outer shape of every response.
type Envelope struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// ErrorBody is the shape of Envelope.Response when Status is not success.
type ErrorBody struct {
	Errors []string `json:"errors"`
}

// LayerResponse holds the per-layer sections of Envelope.Response.
type LayerResponse struct {
	Data            json.RawMessage `json:"datalayer"`
	Image           json.RawMessage `json:"imglayer"`
	ObjectDetection json.RawMessage `json:"objectdetection"`
}

// Field names inside the layer sections.
const (
	FieldSentiment = "sentiment"
	FieldTags      = "tags"
	FieldLocations = "locations"
	FieldColors    = "colors"
	FieldHistogram = "histogram"
)

package client

import (
	"github.com/d8agroup/python-metalayer/client/internal/shardqueue"
	"github.com/d8agroup/python-metalayer/client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Data layer results
	Sentiment = types.Sentiment
	Tag       = types.Tag
	Location  = types.Location
	Bundle    = types.Bundle

	// Image layer results
	RGB            = types.RGB
	Color          = types.Color
	Histogram      = types.Histogram
	OCRResult      = types.OCRResult
	DetectedObject = types.DetectedObject
	ImageBundle    = types.ImageBundle

	// Batch analysis
	Document    = types.Document
	BatchResult = types.BatchResult
	BatchConfig = shardqueue.Config
)

// LoadBatchConfig reads BatchConfig from METALAYER_BATCH_* variables.
func LoadBatchConfig() (BatchConfig, error) { return shardqueue.LoadConfig() }

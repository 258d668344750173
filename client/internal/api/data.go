package api

import (
	"context"

	"github.com/d8agroup/python-metalayer/client/internal/types"
)

// Sentiment scores the tone of text between -5.0 and 5.0.
func Sentiment(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, text string) (*types.Sentiment, error) {
	r, err := postText(ctx, httpClient, ep, types.LayerData, "sentiment", text)
	if err != nil {
		return nil, err
	}
	var s types.Sentiment
	if err := r.decodeField(types.LayerData, r.layers.Data, types.FieldSentiment, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Tagging extracts the strongest uncommon keywords of text.
func Tagging(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, text string) ([]types.Tag, error) {
	r, err := postText(ctx, httpClient, ep, types.LayerData, "tagging", text)
	if err != nil {
		return nil, err
	}
	var tags []types.Tag
	if err := r.decodeField(types.LayerData, r.layers.Data, types.FieldTags, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Locations disambiguates the places text refers to.
func Locations(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, text string) ([]types.Location, error) {
	r, err := postText(ctx, httpClient, ep, types.LayerData, "locations", text)
	if err != nil {
		return nil, err
	}
	var locs []types.Location
	if err := r.decodeField(types.LayerData, r.layers.Data, types.FieldLocations, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// Bundle runs sentiment, tagging and locations in one request.
func Bundle(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, text string) (*types.Bundle, error) {
	r, err := postText(ctx, httpClient, ep, types.LayerData, "bundle", text)
	if err != nil {
		return nil, err
	}
	var b types.Bundle
	if err := r.decodeSection(types.LayerData, r.layers.Data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

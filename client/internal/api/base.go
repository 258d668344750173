package api

import (
	"fmt"
	"strings"
)

// Endpoint locates one deployment of the API. Every call goes to
// {BaseURL}/{layer}/{Version}/{name}.
type Endpoint struct {
	BaseURL string
	Version int
}

// URL builds the address of a single API function.
func (e Endpoint) URL(layer, name string) string {
	return fmt.Sprintf("%s/%s/%d/%s", strings.TrimRight(e.BaseURL, "/"), layer, e.Version, name)
}

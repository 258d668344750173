package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	sdkerrors "github.com/d8agroup/python-metalayer/client/internal/errors"
	"github.com/d8agroup/python-metalayer/client/internal/types"
)

// maxBodyBytes caps how much of a response is read into memory.
const maxBodyBytes = 32 << 20

// reply is a decoded successful envelope.
type reply struct {
	op         string
	statusCode int
	layers     types.LayerResponse
}

// postText sends text as a form-encoded "text" field.
func postText(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, layer, name, text string) (*reply, error) {
	if err := types.ValidateText(text); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	form := url.Values{"text": {text}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL(layer, name), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	return send(httpClient, httpReq, layer+"/"+name)
}

// postImage uploads the reader's bytes unmodified as the multipart file
// field "image".
func postImage(ctx context.Context, httpClient types.HTTPClient, ep Endpoint, layer, name string, image io.Reader) (*reply, error) {
	data, err := types.ReadImage(image)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", imageFileName(image))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL(layer, name), &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	return send(httpClient, httpReq, layer+"/"+name)
}

// imageFileName uses the base name of files and similar named readers.
func imageFileName(r io.Reader) string {
	if n, ok := r.(interface{ Name() string }); ok && n.Name() != "" {
		return filepath.Base(n.Name())
	}
	return "image"
}

// send performs the round trip and unwraps the {status, response} envelope.
func send(httpClient types.HTTPClient, httpReq *http.Request, op string) (*reply, error) {
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, sdkerrors.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, sdkerrors.NewNetworkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, sdkerrors.NewHTTPError(op, resp.StatusCode, string(body), errorMessages(body))
	}

	var env types.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, sdkerrors.NewDecodeError(op, resp.StatusCode, string(body), err)
	}
	if env.Status != types.StatusSuccess {
		return nil, sdkerrors.NewServiceError(op, resp.StatusCode, env.Status, errorMessages(body))
	}

	r := &reply{op: op, statusCode: resp.StatusCode}
	if err := json.Unmarshal(env.Response, &r.layers); err != nil {
		return nil, sdkerrors.NewDecodeError(op, resp.StatusCode, string(body), err)
	}
	return r, nil
}

// errorMessages pulls response.errors out of an envelope, if there is one.
func errorMessages(body []byte) []string {
	var env types.Envelope
	if json.Unmarshal(body, &env) != nil || len(env.Response) == 0 {
		return nil
	}
	var eb types.ErrorBody
	if json.Unmarshal(env.Response, &eb) != nil {
		return nil
	}
	return eb.Errors
}

// decodeSection decodes one layer section; a missing section is a malformed
// response.
func (r *reply) decodeSection(section string, raw json.RawMessage, v any) error {
	if isEmpty(raw) {
		return sdkerrors.NewDecodeError(r.op, r.statusCode, "", fmt.Errorf("response has no %q section", section))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return sdkerrors.NewDecodeError(r.op, r.statusCode, string(raw), err)
	}
	return nil
}

// decodeField decodes one named field of a layer section. A missing or
// null field is a malformed response, not a zero result.
func (r *reply) decodeField(section string, raw json.RawMessage, field string, v any) error {
	var fields map[string]json.RawMessage
	if err := r.decodeSection(section, raw, &fields); err != nil {
		return err
	}
	value, ok := fields[field]
	if !ok || isEmpty(value) {
		return sdkerrors.NewDecodeError(r.op, r.statusCode, string(raw), fmt.Errorf("%s section has no %q field", section, field))
	}
	if err := json.Unmarshal(value, v); err != nil {
		return sdkerrors.NewDecodeError(r.op, r.statusCode, string(raw), err)
	}
	return nil
}

func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

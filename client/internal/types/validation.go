package types

import (
	"io"

	sdkerrors "github.com/d8agroup/python-metalayer/client/internal/errors"
)

// ValidateText rejects empty text before any request is built.
func ValidateText(text string) error {
	if text == "" {
		return sdkerrors.NewInvalidInput("text", "must not be empty")
	}
	return nil
}

// ReadImage rewinds a seekable reader and reads the whole payload.
// The reader is never closed; its owner closes it.
func ReadImage(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, sdkerrors.NewInvalidInput("image", "reader is nil")
	}
	if s, ok := r.(io.Seeker); ok {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return nil, sdkerrors.NewInvalidInput("image", "cannot rewind stream: "+err.Error())
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sdkerrors.NewInvalidInput("image", "cannot read stream: "+err.Error())
	}
	if len(data) == 0 {
		return nil, sdkerrors.NewInvalidInput("image", "stream is empty")
	}
	return data, nil
}

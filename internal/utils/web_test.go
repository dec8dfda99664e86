package utils

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	internal_errors "github.com/gridplace-dev/gridplace/internal/errors"
)

type placeBody struct {
	X     int    `json:"x" validate:"gte=0"`
	Y     int    `json:"y" validate:"gte=0"`
	Color string `json:"color" validate:"required,hexcolor"`
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestDecodeValidate(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{name: "valid", json: `{"x":2,"y":3,"color":"#FF0000"}`, wantErr: false},
		{name: "valid lowercase", json: `{"x":0,"y":0,"color":"#a1b2c3"}`, wantErr: false},
		{name: "missing color", json: `{"x":2,"y":3}`, wantErr: true},
		{name: "bad color", json: `{"x":2,"y":3,"color":"red"}`, wantErr: true},
		{name: "negative coordinate", json: `{"x":-1,"y":3,"color":"#FF0000"}`, wantErr: true},
		{name: "not json", json: `pixel`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b placeBody
			err := DecodeValidate(body(tt.json), &b)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	t.Run("status code error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: 404})
		assert.Equal(t, 404, rr.Code)
		assert.Contains(t, rr.Body.String(), "Board not found")
	})

	t.Run("cooldown error sets Retry-After", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, &internal_errors.CooldownError{RetryAfterSeconds: 4})
		assert.Equal(t, 429, rr.Code)
		assert.Equal(t, "4", rr.Header().Get("Retry-After"))
	})

	t.Run("plain error defaults to 500", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, assert.AnError)
		assert.Equal(t, 500, rr.Code)
	})
}

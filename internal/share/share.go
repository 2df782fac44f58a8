// Package share turns a game into a URL-safe token and back.
//
// A token is the game's JSON, DEFLATE-compressed and encoded with
// unpadded URL-safe base64. Share URLs carry it in the data query
// parameter of the import page.
package share

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/merev/gsr-api/internal/codec"
	"github.com/merev/gsr-api/internal/domain"
)

const (
	// ImportPath is where the UI accepts shared games.
	ImportPath = "/import"
	// DataParam is the query parameter holding the token.
	DataParam = "data"

	// maxPayload caps the decompressed JSON size.
	maxPayload = 1 << 20
)

// NotDecodable is reported when a token is not valid base64 or DEFLATE data.
const NotDecodable codec.ErrorKind = "not_decodable"

var ErrEmptyToken = errors.New("empty share token")

// Encode returns the share token for g.
func Encode(g *domain.Game) (string, error) {
	data, err := codec.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("marshal game: %w", err)
	}

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("create compressor: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("compress game: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress game: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses a token produced by Encode. Errors are *codec.DecodeError
// with kind NotDecodable or one of the codec kinds.
func Decode(token string) (*domain.Game, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, notDecodable(ErrEmptyToken)
	}

	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, notDecodable(fmt.Errorf("base64: %w", err))
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	defer zr.Close()

	data, err := io.ReadAll(io.LimitReader(zr, maxPayload+1))
	if err != nil {
		return nil, notDecodable(fmt.Errorf("inflate: %w", err))
	}
	if len(data) > maxPayload {
		return nil, notDecodable(fmt.Errorf("payload exceeds %d bytes", maxPayload))
	}
	if len(data) == 0 {
		return nil, notDecodable(errors.New("empty payload"))
	}

	return codec.Unmarshal(data)
}

// URL builds the import link for g under origin, e.g. https://host.
func URL(g *domain.Game, origin string) (string, error) {
	token, err := Encode(g)
	if err != nil {
		return "", err
	}
	return Link(origin, token), nil
}

// Link builds the import link for an already encoded token.
func Link(origin, token string) string {
	return strings.TrimRight(origin, "/") + ImportPath + "?" + DataParam + "=" + token
}

// ParseURL decodes the game from a full share URL or a bare token.
func ParseURL(raw string) (*domain.Game, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "?") && !strings.Contains(raw, "://") {
		return Decode(raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, notDecodable(fmt.Errorf("parse url: %w", err))
	}
	return Decode(u.Query().Get(DataParam))
}

func notDecodable(err error) error {
	return &codec.DecodeError{Kind: NotDecodable, Err: err}
}

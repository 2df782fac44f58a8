package share

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/flate"
	"github.com/merev/gsr-api/internal/codec"
	"github.com/merev/gsr-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T) *domain.Game {
	t.Helper()
	g, err := domain.NewGame([]string{"Alice", "Bob"})
	require.NoError(t, err)
	alice := g.Players()[0]
	round, err := g.Round(0)
	require.NoError(t, err)
	round, err = round.SetScore(alice.ID(), domain.Entered{Score: domain.ZeroScore()})
	require.NoError(t, err)
	g, err = g.UpdateRound(0, round)
	require.NoError(t, err)
	return g
}

func deflateToken(t *testing.T, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return base64.RawURLEncoding.EncodeToString(buf.Bytes())
}

func TestEncodeDecode(t *testing.T) {
	g := newGame(t)

	token, err := Encode(g)
	require.NoError(t, err)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")

	decoded, err := Decode(token)
	require.NoError(t, err)
	if diff := cmp.Diff(codec.ToDTO(g), codec.ToDTO(decoded)); diff != "" {
		t.Errorf("decoded game mismatch (-want +got):\n%s", diff)
	}
}

func TestURLAndParseURL(t *testing.T) {
	g := newGame(t)

	link, err := URL(g, "https://scores.example.com/")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://scores.example.com/import?data="))

	fromURL, err := ParseURL(link)
	require.NoError(t, err)
	assert.Len(t, fromURL.Players(), 2)

	token := strings.TrimPrefix(link, "https://scores.example.com/import?data=")
	fromToken, err := ParseURL(token)
	require.NoError(t, err)
	assert.Equal(t, codec.ToDTO(fromURL), codec.ToDTO(fromToken))
}

func TestLinkMatchesURL(t *testing.T) {
	g := newGame(t)
	token, err := Encode(g)
	require.NoError(t, err)

	link, err := URL(g, "https://scores.example.com")
	require.NoError(t, err)
	assert.Equal(t, link, Link("https://scores.example.com/", token))
	assert.Equal(t, "/import?data=abc", Link("", "abc"))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  codec.ErrorKind
	}{
		{"empty", "  ", NotDecodable},
		{"bad base64", "!!!not-base64!!!", NotDecodable},
		{"not deflate", base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xff, 0xff}), NotDecodable},
		{"empty payload", deflateToken(t, ""), NotDecodable},
		{"malformed json", deflateToken(t, "{oops"), codec.MalformedJSON},
		{"invalid shape", deflateToken(t, `{"players":[]}`), codec.InvalidShape},
		{"invalid game", deflateToken(t, `{"players":[],"rounds":[],"isEnded":false}`), codec.InvalidGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			require.Error(t, err)
			kind, ok := codec.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestParseURLWithoutData(t *testing.T) {
	_, err := ParseURL("https://scores.example.com/import")
	kind, ok := codec.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, NotDecodable, kind)
}

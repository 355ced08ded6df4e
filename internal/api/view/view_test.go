package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Login(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageLogin, &Data{Error: "Invalid username or password.", Username: "al<ice"}, nil))

	html := buf.String()
	require.Contains(t, html, "Invalid username or password.")
	require.Contains(t, html, `action="/login"`)
	require.Contains(t, html, "al&lt;ice")
	require.NotContains(t, html, "Log out")
}

func TestRenderer_IndexShowsDisplayName(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageIndex, &Data{Authed: true, DisplayName: "Alice"}, nil))
	require.Contains(t, buf.String(), "Alice")
	require.Contains(t, buf.String(), "/appliance/status/toggle")
}

func TestRenderer_Hash(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageHash, &Data{Hash: "abc+/="}, nil))
	// html/template escapes '+' in text.
	require.True(t, strings.Contains(buf.String(), "abc&#43;/="))
}

func TestRenderer_HashKeepsSaltNotPassword(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageHash, &Data{Salt: "pepper", Hash: "xyz"}, nil))
	html := buf.String()
	require.Contains(t, html, `value="pepper"`)
	require.Contains(t, html, `<input id="password" name="password" type="password" required>`)
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	require.Error(t, r.Render(&bytes.Buffer{}, "missing", nil, nil))
}

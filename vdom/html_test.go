//go:build !wasm
// +build !wasm

package vdom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyle_CSS(t *testing.T) {
	t.Run("orders declarations and skips empty fields", func(t *testing.T) {
		s := Style{FontStyle: "italic", FontSize: "14px", TextColor: "black"}
		assert.Equal(t, "color: black; font-size: 14px; font-style: italic", s.CSS())
	})

	t.Run("all fields", func(t *testing.T) {
		s := Style{
			Alignment:       "center",
			BackgroundColor: "black",
			TextColor:       "white",
			Padding:         "10px",
			FontSize:        "14px",
			FontStyle:       "italic",
		}
		assert.Equal(t,
			"text-align: center; background-color: black; color: white; padding: 10px; font-size: 14px; font-style: italic",
			s.CSS())
	})

	t.Run("zero style renders nothing", func(t *testing.T) {
		assert.True(t, Style{}.IsZero())
		assert.Equal(t, "", Style{}.CSS())
	})
}

func TestHTML_NestedTree(t *testing.T) {
	tree := Main(nil,
		Paragraph("intro", nil),
		Div(nil, H2("10:15:32 AM", nil)).WithStyle(Style{BackgroundColor: "black", TextColor: "white", Padding: "10px"}),
	).WithStyle(Style{Alignment: "center"})

	out, err := HTML(tree)
	require.NoError(t, err)

	expected := `<main style="text-align: center">` +
		`<p>intro</p>` +
		`<div style="background-color: black; color: white; padding: 10px"><h2>10:15:32 AM</h2></div>` +
		`</main>`
	assert.Equal(t, expected, out)
}

func TestHTML_EscapesText(t *testing.T) {
	out, err := HTML(Paragraph(`<script>alert("x")</script> & more`, nil))
	require.NoError(t, err)
	assert.Equal(t, `<p>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; more</p>`, out)
}

func TestHTML_Attributes(t *testing.T) {
	t.Run("sorted keys, booleans and numbers", func(t *testing.T) {
		n := Div(map[string]any{"id": "app", "hidden": true, "disabled": false, "data-n": 3})

		out, err := HTML(n)
		require.NoError(t, err)
		assert.Equal(t, `<div data-n="3" hidden="" id="app"></div>`, out)
	})

	t.Run("style field wins over style attribute", func(t *testing.T) {
		n := Div(map[string]any{"style": "color: red"}).WithStyle(Style{TextColor: "white"})

		out, err := HTML(n)
		require.NoError(t, err)
		assert.Equal(t, `<div style="color: white"></div>`, out)
	})

	t.Run("style attribute kept without style field", func(t *testing.T) {
		out, err := HTML(Div(map[string]any{"style": "color: red"}))
		require.NoError(t, err)
		assert.Equal(t, `<div style="color: red"></div>`, out)
	})
}

func TestHTML_UnsupportedTag(t *testing.T) {
	_, err := HTML(Div(nil, NewVNode("marquee", nil, nil, "nope")))
	require.ErrorIs(t, err, ErrUnsupportedTag)
}

func TestRenderHTML_NilAndPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, nil))
	assert.Empty(t, buf.String())

	out, err := HTML(Div(nil, nil, Paragraph("kept", nil), nil))
	require.NoError(t, err)
	assert.Equal(t, `<div><p>kept</p></div>`, out)
}

func TestHTML_TextNode(t *testing.T) {
	out, err := HTML(Paragraph("", nil))
	require.NoError(t, err)
	assert.Equal(t, `<p></p>`, out)

	out, err = HTML(Div(nil, NewVNode(TextTag, nil, nil, "bare")))
	require.NoError(t, err)
	assert.Equal(t, `<div>bare</div>`, out)
}

func TestVNode_FindAndText(t *testing.T) {
	tree := Div(nil,
		Header(nil, H1("Title", nil), H2("Sub", nil)),
		Footer(nil, Paragraph("tail", nil)),
	)

	assert.Equal(t, "TitleSubtail", tree.Text())
	require.NotNil(t, tree.Find("h2"))
	assert.Equal(t, "Sub", tree.Find("h2").Content)
	assert.Nil(t, tree.Find("main"))
	assert.True(t, IsSupported("footer"))
	assert.False(t, IsSupported("blink"))
}

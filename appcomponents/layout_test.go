package appcomponents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-clock/vdom"
)

func TestHeader_Render(t *testing.T) {
	node := (&Header{}).Render(nil)

	require.Equal(t, "header", node.Tag)
	require.Len(t, node.Children, 2)
	assert.Equal(t, "h1", node.Children[0].Tag)
	assert.Equal(t, "Welcome to our Single Page Application", node.Children[0].Content)
	assert.Equal(t, "h2", node.Children[1].Tag)
	assert.Equal(t, HeaderSubtitle, node.Children[1].Content)
}

func TestFooter_Render(t *testing.T) {
	node := (&Footer{}).Render(nil)

	require.Equal(t, "footer", node.Tag)
	require.Len(t, node.Children, 2)

	copyright, attribution := node.Children[0], node.Children[1]
	assert.Equal(t, "© 2022 Our Company. All rights reserved.", copyright.Content)
	assert.Nil(t, copyright.Style)

	assert.Equal(t, "Powered by synapse labs", attribution.Content)
	require.NotNil(t, attribution.Style)
	assert.Equal(t, "italic", attribution.Style.FontStyle)
	assert.Equal(t, "14px", attribution.Style.FontSize)
	assert.Equal(t, "black", attribution.Style.TextColor)
}

func TestFooter_HTML(t *testing.T) {
	out, err := vdom.HTML((&Footer{}).Render(nil))
	require.NoError(t, err)

	assert.Equal(t,
		`<footer><p>© 2022 Our Company. All rights reserved.</p>`+
			`<p style="color: black; font-size: 14px; font-style: italic">Powered by synapse labs</p></footer>`,
		out)
}

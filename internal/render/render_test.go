package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

func TestRender_Deterministic(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	first := r.Render()
	second := r.Render()
	assert.Equal(t, first, second)

	// A fresh renderer produces the same bytes.
	other, err := New()
	require.NoError(t, err)
	assert.Equal(t, first, other.Render())
}

func TestRender_SubstitutesHeaderData(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	out := r.Render()

	assert.True(t, strings.HasPrefix(out, "'use client'\n"))
	assert.Contains(t, out, "DesenrolaDCL")
	assert.Contains(t, out, "Sistema de Gestão de Pedidos")
	assert.Contains(t, out, "router.push('/login')")
	assert.NotContains(t, out, "[[")
	assert.NotContains(t, out, "]]")
}

func TestRender_WithHeader(t *testing.T) {
	r, err := New(WithHeader(HeaderData{Brand: "Acme", Tagline: "Orders", LoginPath: "/signin"}))
	require.NoError(t, err)
	out := r.Render()

	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "router.push('/signin')")
	assert.NotContains(t, out, "DesenrolaDCL")
}

func TestScaffold(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		kind     string
		contains []string
	}{
		{
			name:     "functional",
			kind:     types.KindFunctional,
			contains: []string{"interface OrderCardProps", "export function OrderCard(", "useState(false)"},
		},
		{
			name:     "page",
			kind:     types.KindPage,
			contains: []string{"export default function OrderCardPage()", "title: 'OrderCard'", "sistema Desenrola DCL"},
		},
		{
			name:     "unknown kind falls back to functional",
			kind:     "widget",
			contains: []string{"export function OrderCard("},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Scaffold("OrderCard", tt.kind)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestScaffold_InvalidName(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{"", "orderCard", "Order Card", "9Lives", "Order-Card"} {
		_, err := r.Scaffold(name, types.KindFunctional)
		assert.True(t, errors.Is(err, types.ErrInvalidComponentName), "name %q", name)
	}
}

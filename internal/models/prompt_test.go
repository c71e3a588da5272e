package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPromptUnmarshalYAML_Shapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"template key", "id: a\ntitle: A\ntemplate: \"Hi [name]\"\ncategory: Career\n", "Hi [name]"},
		{"content key", "id: a\ntitle: A\ncontent: \"Hi [name]\"\ncategory: Career\n", "Hi [name]"},
		{"prompt key", "id: a\ntitle: A\nprompt: \"Hi [name]\"\ncategory: Career\n", "Hi [name]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Prompt
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &p))
			assert.Equal(t, tt.want, p.Template)
			assert.Equal(t, "A", p.Name)
			assert.Equal(t, "Career", p.Category)
			assert.Nil(t, p.Subcategory)
			assert.Nil(t, p.UsageCount)
		})
	}
}

func TestPromptUnmarshalYAML_OptionalFields(t *testing.T) {
	doc := `
id: ghost
title: Ghost Story
prompt: Tell a story about [place]
category: Scary
subcategory: Short
description: Spooky
isFeatured: true
usageCount: 0
`
	var p Prompt
	require.NoError(t, yaml.Unmarshal([]byte(doc), &p))

	assert.Equal(t, "Short", p.SubcategoryOr(""))
	assert.Equal(t, "Spooky", p.DescriptionOr(""))
	assert.True(t, p.IsFeatured())
	require.NotNil(t, p.UsageCount)
	assert.Equal(t, 0, p.Uses())
}

func TestPromptAccessors_Absent(t *testing.T) {
	p := &Prompt{ID: "x"}
	assert.Equal(t, "none", p.SubcategoryOr("none"))
	assert.Equal(t, "", p.DescriptionOr(""))
	assert.False(t, p.IsFeatured())
	assert.Equal(t, 0, p.Uses())
}

func TestPromptClone(t *testing.T) {
	uses := 3
	p := &Prompt{ID: "x", Subcategory: StringPtr("a"), UsageCount: &uses}
	c := p.Clone()
	*c.Subcategory = "b"
	*c.UsageCount = 10

	assert.Equal(t, "a", *p.Subcategory)
	assert.Equal(t, 3, p.Uses())
}

func TestPromptListItem(t *testing.T) {
	uses := 2
	featured := true
	p := Prompt{
		ID:          "email",
		Name:        "Professional\nEmail",
		Template:    "Write about [topic]",
		Category:    "Career",
		Subcategory: StringPtr("Email"),
		Summary:     StringPtr("Concise emails"),
		Featured:    &featured,
		UsageCount:  &uses,
	}

	assert.Equal(t, "* Professional Email", p.Title())
	assert.Equal(t, "Career / Email • Concise emails • used 2×", p.Description())
	assert.Equal(t, "Professional Email Write about [topic]", p.FilterValue())

	assert.Equal(t, "bare", Prompt{ID: "bare"}.Title())
}

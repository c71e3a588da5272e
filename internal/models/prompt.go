package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryAll is the filter value that matches every category. It is never a
// category of a prompt.
const CategoryAll = "All"

// Prompt is a catalog record. Template is the raw prompt text and may
// contain [marker] placeholders.
//
// Optional fields are pointers so that "absent" and "zero" stay distinct.
type Prompt struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"title" json:"title"`
	Template    string  `yaml:"template" json:"template"`
	Category    string  `yaml:"category" json:"category"`
	Subcategory *string `yaml:"subcategory,omitempty" json:"subcategory,omitempty"`
	Summary     *string `yaml:"description,omitempty" json:"description,omitempty"`
	Featured    *bool   `yaml:"featured,omitempty" json:"featured,omitempty"`
	UsageCount  *int    `yaml:"usage_count,omitempty" json:"usage_count,omitempty"`

	// FilePath is set for prompts loaded from a user markdown file.
	FilePath string `yaml:"-" json:"-"`
}

// rawPrompt mirrors every shape a catalog entry has been written in.
type rawPrompt struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Template    string  `yaml:"template"`
	Content     string  `yaml:"content"`
	PromptText  string  `yaml:"prompt"`
	Category    string  `yaml:"category"`
	Subcategory *string `yaml:"subcategory"`
	Description *string `yaml:"description"`
	Featured    *bool   `yaml:"featured"`
	IsFeatured  *bool   `yaml:"isFeatured"`
	UsageCount  *int    `yaml:"usage_count"`
	UsageCount2 *int    `yaml:"usageCount"`
}

// UnmarshalYAML accepts the legacy "content" and "prompt" keys for the
// template text and camelCase spellings of the optional fields.
func (p *Prompt) UnmarshalYAML(value *yaml.Node) error {
	var raw rawPrompt
	if err := value.Decode(&raw); err != nil {
		return err
	}

	tpl := raw.Template
	if tpl == "" {
		tpl = raw.Content
	}
	if tpl == "" {
		tpl = raw.PromptText
	}

	featured := raw.Featured
	if featured == nil {
		featured = raw.IsFeatured
	}
	usage := raw.UsageCount
	if usage == nil {
		usage = raw.UsageCount2
	}

	*p = Prompt{
		ID:          raw.ID,
		Name:        raw.Title,
		Template:    tpl,
		Category:    raw.Category,
		Subcategory: raw.Subcategory,
		Summary:     raw.Description,
		Featured:    featured,
		UsageCount:  usage,
	}
	return nil
}

// SubcategoryOr returns the subcategory or def when absent.
func (p *Prompt) SubcategoryOr(def string) string {
	if p.Subcategory == nil {
		return def
	}
	return *p.Subcategory
}

// DescriptionOr returns the description or def when absent.
func (p *Prompt) DescriptionOr(def string) string {
	if p.Summary == nil {
		return def
	}
	return *p.Summary
}

// IsFeatured reports the featured flag, false when absent.
func (p *Prompt) IsFeatured() bool {
	return p.Featured != nil && *p.Featured
}

// Uses returns the usage counter, zero when absent.
func (p *Prompt) Uses() int {
	if p.UsageCount == nil {
		return 0
	}
	return *p.UsageCount
}

// Clone returns a deep copy so callers cannot mutate catalog state.
func (p *Prompt) Clone() *Prompt {
	c := *p
	if p.Subcategory != nil {
		c.Subcategory = StringPtr(*p.Subcategory)
	}
	if p.Summary != nil {
		c.Summary = StringPtr(*p.Summary)
	}
	if p.Featured != nil {
		v := *p.Featured
		c.Featured = &v
	}
	if p.UsageCount != nil {
		v := *p.UsageCount
		c.UsageCount = &v
	}
	return &c
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (p Prompt) FilterValue() string {
	return cleanString(p.Name + " " + p.Template)
}

// Title satisfies the list.Item interface
func (p Prompt) Title() string {
	title := cleanString(p.Name)
	if title == "" {
		title = cleanString(p.ID)
	}
	if p.IsFeatured() {
		title = "* " + title
	}
	return title
}

// Description satisfies the list.Item interface
func (p Prompt) Description() string {
	var parts []string

	category := p.Category
	if p.Subcategory != nil && *p.Subcategory != "" {
		category = fmt.Sprintf("%s / %s", category, *p.Subcategory)
	}
	if category != "" {
		parts = append(parts, category)
	}

	if p.Summary != nil {
		if summary := truncate(cleanString(*p.Summary), 60); summary != "" {
			parts = append(parts, summary)
		}
	}

	if uses := p.Uses(); uses > 0 {
		parts = append(parts, fmt.Sprintf("used %d×", uses))
	}

	return truncate(strings.Join(parts, " • "), 100)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// cleanString removes problematic characters that might cause rendering issues
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
		} else if r >= 32 && r != 127 {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

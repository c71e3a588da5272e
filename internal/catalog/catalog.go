package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sahilm/fuzzy"

	"github.com/dpshade/prompt-catalog/internal/errors"
	"github.com/dpshade/prompt-catalog/internal/models"
	"github.com/dpshade/prompt-catalog/internal/validation"
)

const (
	// DefaultSuggestLimit is the size of the search dropdown.
	DefaultSuggestLimit = 3
	// DefaultMostUsed is the size of the "most used" row of a category.
	DefaultMostUsed = 3
)

// Filter selects prompts. Empty fields do not filter.
type Filter struct {
	Category    string
	Subcategory string
	Query       string
}

// Catalog holds the prompt records and the known categories.
type Catalog struct {
	mu         sync.RWMutex
	prompts    []*models.Prompt
	categories []string
}

// New builds a catalog. Categories keep their given order, categories used by
// prompts but not listed are appended, and "All" always comes first.
func New(prompts []*models.Prompt, categories []string) *Catalog {
	c := &Catalog{}
	c.categories = append(c.categories, models.CategoryAll)
	for _, name := range categories {
		c.addCategoryLocked(name)
	}
	for _, p := range prompts {
		c.prompts = append(c.prompts, p.Clone())
		c.addCategoryLocked(p.Category)
	}
	return c
}

func (c *Catalog) addCategoryLocked(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || c.hasCategoryLocked(name) {
		return false
	}
	c.categories = append(c.categories, name)
	return true
}

func (c *Catalog) hasCategoryLocked(name string) bool {
	for _, existing := range c.categories {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}

// Len returns the number of prompts.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.prompts)
}

// Categories returns every category, "All" first.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Subcategories returns the distinct subcategories used in category, sorted.
func (c *Catalog) Subcategories(category string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var subs []string
	for _, p := range c.prompts {
		if !matchesCategory(p, category) {
			continue
		}
		sub := p.SubcategoryOr("")
		if sub == "" || seen[sub] {
			continue
		}
		seen[sub] = true
		subs = append(subs, sub)
	}
	sort.Strings(subs)
	return subs
}

// Get returns a copy of the prompt with the given ID.
func (c *Catalog) Get(id string) (*models.Prompt, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p := c.findLocked(id); p != nil {
		return p.Clone(), nil
	}
	return nil, errors.NotFoundError(fmt.Sprintf("prompt %q", id))
}

func (c *Catalog) findLocked(id string) *models.Prompt {
	for _, p := range c.prompts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func matchesCategory(p *models.Prompt, category string) bool {
	return category == "" || category == models.CategoryAll || strings.EqualFold(p.Category, category)
}

func matchesSubcategory(p *models.Prompt, subcategory string) bool {
	return subcategory == "" || strings.EqualFold(p.SubcategoryOr(""), subcategory)
}

// List returns copies of the prompts selected by f.
//
// Without a query the result is ordered by usage count, most used first,
// ties keeping catalog order. With a query only fuzzy matches over title,
// template and description are kept, best match first.
func (c *Catalog) List(f Filter) []*models.Prompt {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var selected []*models.Prompt
	for _, p := range c.prompts {
		if matchesCategory(p, f.Category) && matchesSubcategory(p, f.Subcategory) {
			selected = append(selected, p)
		}
	}

	query := strings.TrimSpace(f.Query)
	if query == "" {
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].Uses() > selected[j].Uses()
		})
		return cloneAll(selected)
	}

	searchStrings := make([]string, len(selected))
	for i, p := range selected {
		searchStrings[i] = fmt.Sprintf("%s %s %s", p.Name, p.Template, p.DescriptionOr(""))
	}

	matches := fuzzy.Find(query, searchStrings)
	results := make([]*models.Prompt, 0, len(matches))
	for _, match := range matches {
		results = append(results, selected[match.Index].Clone())
	}
	return results
}

// Suggest returns at most limit prompts whose title or description contains
// query, ignoring case, in catalog order. An empty query yields nothing.
func (c *Catalog) Suggest(query string, limit int) []*models.Prompt {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*models.Prompt
	for _, p := range c.prompts {
		haystack := strings.ToLower(p.Name + " " + p.DescriptionOr(""))
		if strings.Contains(haystack, query) {
			out = append(out, p.Clone())
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// MostUsed returns the n most used prompts of a concrete category. The "All"
// view has no most-used row.
func (c *Catalog) MostUsed(category string, n int) []*models.Prompt {
	if category == "" || category == models.CategoryAll {
		return nil
	}
	if n <= 0 {
		n = DefaultMostUsed
	}
	ranked := c.List(Filter{Category: category})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RecordUse increments the usage counter of a prompt after a confirmed
// copy or open action.
func (c *Catalog) RecordUse(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.findLocked(id)
	if p == nil {
		return errors.NotFoundError(fmt.Sprintf("prompt %q", id))
	}
	uses := p.Uses() + 1
	p.UsageCount = &uses
	return nil
}

// AddCategory adds a new category. Names are compared ignoring case.
func (c *Catalog) AddCategory(name string) (string, error) {
	if appErr := validation.ValidateCategory(name).ToAppError(); appErr != nil {
		return "", appErr
	}
	name = strings.TrimSpace(name)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.addCategoryLocked(name) {
		return "", errors.AlreadyExistsError(fmt.Sprintf("category %q", name))
	}
	log.Info().Str("category", name).Msg("category added")
	return name, nil
}

// AddPrompt validates in and appends it to the catalog. The ID is derived
// from the title.
func (c *Catalog) AddPrompt(in validation.PromptInput) (*models.Prompt, error) {
	if appErr := validation.ValidatePrompt(in).ToAppError(); appErr != nil {
		return nil, appErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	category := strings.TrimSpace(in.Category)
	if !c.hasCategoryLocked(category) {
		return nil, errors.NotFoundError(fmt.Sprintf("category %q", category))
	}
	for _, existing := range c.categories {
		if strings.EqualFold(existing, category) {
			in.Category = existing
			break
		}
	}

	id := generateIDFromTitle(in.Title)
	if c.findLocked(id) != nil {
		id = fmt.Sprintf("%s-%s", id, uuid.NewString()[:8])
	}

	p := in.PromptModel(id)
	c.prompts = append(c.prompts, p)
	log.Info().Str("id", id).Str("category", p.Category).Msg("prompt added")
	return p.Clone(), nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// generateIDFromTitle creates a URL-safe ID from a title
func generateIDFromTitle(title string) string {
	id := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return "untitled-prompt"
	}
	if len(id) > 50 {
		id = strings.TrimSuffix(id[:50], "-")
	}
	return id
}

func cloneAll(in []*models.Prompt) []*models.Prompt {
	out := make([]*models.Prompt, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// Package catalog supplies immutable quiz and lesson definitions. The
// engine never mutates the catalog, only reads it; invalid questions are
// filtered out at load time so downstream code sees only valid definitions.
package catalog

// FallbackLocale is used when a question has no text for the asked locale.
const FallbackLocale = "en"

// Lesson groups the questions for one skill.
type Lesson struct {
	ID        string            `json:"id"`
	SkillID   string            `json:"skill_id"`
	Title     map[string]string `json:"title"`
	Questions []Question        `json:"questions"`
}

// Letter is one entry of the letter lookup table: explicit configuration
// rather than a package singleton, so tests can inject fixtures.
type Letter struct {
	Glyph    string `json:"glyph"`
	Name     string `json:"name"`
	AudioKey string `json:"audio_key,omitempty"`
}

// Catalog is the full immutable content set.
type Catalog struct {
	Locales []string `json:"locales"`
	Letters []Letter `json:"letters,omitempty"`
	Lessons []Lesson `json:"lessons"`
}

// Lesson returns the lesson with the given id, or nil.
func (c *Catalog) Lesson(id string) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].ID == id {
			return &c.Lessons[i]
		}
	}
	return nil
}

// Question returns the question with the given id, or nil.
func (c *Catalog) Question(id string) *Question {
	for i := range c.Lessons {
		for j := range c.Lessons[i].Questions {
			if c.Lessons[i].Questions[j].ID == id {
				return &c.Lessons[i].Questions[j]
			}
		}
	}
	return nil
}

// SkillIDs returns the distinct skill ids across all lessons, in catalog
// order.
func (c *Catalog) SkillIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for i := range c.Lessons {
		if !seen[c.Lessons[i].SkillID] {
			seen[c.Lessons[i].SkillID] = true
			ids = append(ids, c.Lessons[i].SkillID)
		}
	}
	return ids
}

// LetterByGlyph returns the letter table entry for a glyph, or nil.
func (c *Catalog) LetterByGlyph(glyph string) *Letter {
	for i := range c.Letters {
		if c.Letters[i].Glyph == glyph {
			return &c.Letters[i]
		}
	}
	return nil
}

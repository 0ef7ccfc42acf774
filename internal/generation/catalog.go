package generation

import (
	"errors"
	"fmt"
)

// Configuration errors. They are reported immediately and never retried.
var (
	ErrInvalidConfig  = errors.New("invalid generation config")
	ErrEmptyTerminal  = fmt.Errorf("%w: catalog has no terminal modules", ErrInvalidConfig)
	ErrEmptyNormal    = fmt.Errorf("%w: catalog has no normal modules", ErrInvalidConfig)
	ErrTargetTooSmall = fmt.Errorf("%w: target module count must be at least 2", ErrInvalidConfig)
)

// Catalog partitions the available templates.
// Terminal templates have an entrance/exit door and are used for the root and
// the final connection; normal templates fill the interior.
type Catalog struct {
	Terminal []*ModuleTemplate
	Normal   []*ModuleTemplate
}

// NewCatalog partitions a flat template list
func NewCatalog(templates []*ModuleTemplate) (*Catalog, error) {
	c := &Catalog{}
	for _, t := range templates {
		if t == nil {
			continue
		}
		if t.HasEntranceExit() {
			c.Terminal = append(c.Terminal, t)
		} else {
			c.Normal = append(c.Normal, t)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that both partitions are populated
func (c *Catalog) Validate() error {
	if c == nil || len(c.Terminal) == 0 {
		return ErrEmptyTerminal
	}
	if len(c.Normal) == 0 {
		return ErrEmptyNormal
	}
	return nil
}

// Templates returns terminal followed by normal templates
func (c *Catalog) Templates() []*ModuleTemplate {
	out := make([]*ModuleTemplate, 0, len(c.Terminal)+len(c.Normal))
	out = append(out, c.Terminal...)
	return append(out, c.Normal...)
}

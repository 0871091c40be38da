// Provider Registry - capability-aware dispatch from model names to providers.
//
// Information Hiding:
// - Provider ordering and alias resolution rules
// - Auto-mode candidate filtering and ranking
// - Restriction policy enforcement
//
// The registry is written only during startup wiring; after that every
// operation is a pure read, safe under concurrent tool invocations
// without locking.

package llm

import (
	"fmt"
	"sort"
	"strings"
)

// Category is a coarse task class used by auto-mode selection.
type Category string

const (
	CategoryFast        Category = "fast"
	CategoryReasoning   Category = "reasoning"
	CategoryCoding      Category = "coding"
	CategoryVision      Category = "vision"
	CategoryLongContext Category = "long_context"
	CategoryGeneral     Category = "general"
)

// longContextThreshold is the minimum context window for the
// long_context category.
const longContextThreshold = 400_000

// eligible reports whether a model's capability set satisfies the
// category's required flags.
func (c Category) eligible(capability ModelCapability) bool {
	switch c {
	case CategoryReasoning:
		return capability.SupportsExtendedThinking
	case CategoryCoding:
		return capability.AllowCodeGeneration
	case CategoryVision:
		return capability.SupportsImages
	case CategoryLongContext:
		return capability.ContextWindow >= longContextThreshold
	case CategoryFast:
		// Extended-thinking models trade latency for depth.
		return !capability.SupportsExtendedThinking
	default:
		return true
	}
}

// ParseCategory parses a category from string (case-insensitive).
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "fast":
		return CategoryFast, nil
	case "reasoning":
		return CategoryReasoning, nil
	case "coding":
		return CategoryCoding, nil
	case "vision":
		return CategoryVision, nil
	case "long_context":
		return CategoryLongContext, nil
	case "general", "":
		return CategoryGeneral, nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// RestrictionPolicy is a configured allow/deny list over canonical model
// names, aliases, and provider types. The zero policy allows everything.
type RestrictionPolicy struct {
	allowed  map[string]struct{} // lowercased; empty means allow all
	disabled map[string]struct{} // lowercased
}

// NewRestrictionPolicy builds a policy from allow and deny lists. Names
// match canonical model names, aliases, or provider type names.
func NewRestrictionPolicy(allowed, disabled []string) *RestrictionPolicy {
	p := &RestrictionPolicy{
		allowed:  make(map[string]struct{}),
		disabled: make(map[string]struct{}),
	}
	for _, name := range allowed {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			p.allowed[name] = struct{}{}
		}
	}
	for _, name := range disabled {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			p.disabled[name] = struct{}{}
		}
	}
	return p
}

// Allows reports whether the policy permits a model.
func (p *RestrictionPolicy) Allows(capability ModelCapability) bool {
	if p == nil {
		return true
	}
	if p.matches(p.disabled, capability) {
		return false
	}
	if len(p.allowed) == 0 {
		return true
	}
	return p.matches(p.allowed, capability)
}

func (p *RestrictionPolicy) matches(set map[string]struct{}, capability ModelCapability) bool {
	if len(set) == 0 {
		return false
	}
	if _, ok := set[strings.ToLower(capability.ModelName)]; ok {
		return true
	}
	if _, ok := set[capability.Provider.String()]; ok {
		return true
	}
	for _, alias := range capability.Aliases {
		if _, ok := set[strings.ToLower(alias)]; ok {
			return true
		}
	}
	return false
}

// Registry maps model names and aliases to provider backends and
// performs auto-mode selection.
type Registry struct {
	providers []Provider // registration order
	byType    map[ProviderType]bool
	policy    *RestrictionPolicy
}

// NewRegistry creates an empty registry. A nil policy allows all models.
func NewRegistry(policy *RestrictionPolicy) *Registry {
	return &Registry{
		byType: make(map[ProviderType]bool),
		policy: policy,
	}
}

// Register appends a provider. Registration is idempotent by provider
// type: a second provider of the same type is ignored. The provider's
// catalog is validated on first registration.
func (r *Registry) Register(p Provider) error {
	if r.byType[p.Type()] {
		return nil
	}
	if err := validateCatalog(p.Capabilities()); err != nil {
		return fmt.Errorf("registering %s: %w", p.Type(), err)
	}
	r.providers = append(r.providers, p)
	r.byType[p.Type()] = true
	return nil
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// IsAuto reports whether a model string requests auto-mode selection.
func IsAuto(model string) bool {
	return strings.EqualFold(model, "auto")
}

// Resolve maps a model name or alias (case-insensitive) to its owning
// provider and canonical capability descriptor. Exact canonical matches
// win over alias matches; within each pass, the first-registered
// provider wins. Fails with ErrUnknownModel or ErrModelRestricted.
func (r *Registry) Resolve(model string) (Provider, ModelCapability, error) {
	// Pass 1: canonical names.
	for _, p := range r.providers {
		for _, c := range p.Capabilities() {
			if strings.EqualFold(c.ModelName, model) {
				return r.checked(p, c)
			}
		}
	}
	// Pass 2: aliases.
	for _, p := range r.providers {
		if c, ok := p.Capability(model); ok {
			return r.checked(p, c)
		}
	}
	return nil, ModelCapability{}, fmt.Errorf("%q: %w", model, ErrUnknownModel)
}

func (r *Registry) checked(p Provider, c ModelCapability) (Provider, ModelCapability, error) {
	if !r.policy.Allows(c) {
		return nil, ModelCapability{}, fmt.Errorf("%q: %w", c.ModelName, ErrModelRestricted)
	}
	return p, c, nil
}

// ListAvailable returns the canonical names of all models the registry
// can serve, sorted, with restricted models filtered out. A provider is
// registered only when its credentials are configured, so presence in
// the registry implies availability.
func (r *Registry) ListAvailable() []string {
	var names []string
	for _, p := range r.providers {
		for _, c := range p.Capabilities() {
			if r.policy.Allows(c) {
				names = append(names, c.ModelName)
			}
		}
	}
	sort.Strings(names)
	return names
}

// SelectAuto picks the best available model for a task category:
// filter by availability, category-required capability flags, and the
// restriction policy, then rank by intelligence score (ties: larger
// context window, then lexicographic canonical name).
func (r *Registry) SelectAuto(category Category) (ModelCapability, error) {
	var candidates []ModelCapability
	for _, p := range r.providers {
		for _, c := range p.Capabilities() {
			if !category.eligible(c) {
				continue
			}
			if !r.policy.Allows(c) {
				continue
			}
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return ModelCapability{}, fmt.Errorf("category %s: %w", category, ErrNoEligibleModel)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IntelligenceScore != b.IntelligenceScore {
			return a.IntelligenceScore > b.IntelligenceScore
		}
		if a.ContextWindow != b.ContextWindow {
			return a.ContextWindow > b.ContextWindow
		}
		return a.ModelName < b.ModelName
	})
	return candidates[0], nil
}

// Close shuts down every registered provider, returning the first error.
func (r *Registry) Close() error {
	var first error
	for _, p := range r.providers {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

package classifier

import (
	"strings"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Category is a storefront category name.
type Category string

// The fixed taxonomy. Other is only stamped by the "other" unclassified policy.
const (
	HandSanitizers    Category = "Hand Sanitizers"
	HandSoaps         Category = "Hand Soaps"
	FloorSanitizers   Category = "Floor Sanitizers for Food Service"
	DisinfectantWipes Category = "Food Safe Disinfectant Wipes"
	Dispensing        Category = "Dispensing Options"
	PeraceticAcid     Category = "Peracetic Acid Products"
	Other             Category = "Other"
)

// Rule maps a set of keywords to a category. A rule matches when any
// keyword matches.
type Rule struct {
	Category Category
	Keywords []string
}

// NameRules are matched as plain substrings of the lowercased name.
// Order matters: PAA products carry names that would otherwise fall
// into the surface/floor bucket.
var NameRules = []Rule{
	{PeraceticAcid, []string{"paa", "peracetic", "pera fc"}},
	{HandSanitizers, []string{"hand sanitizer", "e3 plus", "alpet e3", "smart san hand"}},
	{HandSoaps, []string{
		"hand soap", "hand cleaner", "foam soap", "liquid soap",
		"alpet e2", "alpet e1", "alpet e4", "alpet q e2", "haccp q e2", "softensure",
	}},
	{DisinfectantWipes, []string{"wipe"}},
	{Dispensing, []string{"dispenser", "foamer", "foam unit", "versaclenz", "ez step", "dema", "attachment"}},
	{FloorSanitizers, []string{
		"surface sanitizer", "alpet d2", "d2 quat", "no-rinse quat", "quat sanitizer",
		"floor", "footwear", "smartstep", "dry step", "shoe", "boot",
		"warewashing", "detergent",
	}},
}

// URLRules are matched against whole path segments.
var URLRules = []Rule{
	{PeraceticAcid, []string{"peracetic-acid", "paa"}},
	{HandSanitizers, []string{"hand-sanitizers"}},
	{HandSoaps, []string{"industrial-hand-soap", "hand-soap"}},
	{DisinfectantWipes, []string{"disinfectant-wipes", "wipes"}},
	{Dispensing, []string{"dispensers", "dispenser"}},
	{FloorSanitizers, []string{"floor-sanitizers", "surface-sanitizers", "shoe-sanitizer", "footwear"}},
}

// Classify returns the category for a page or product. Name signals are
// more specific than the URL and win when both match.
func Classify(rawURL, name string) (Category, bool) {
	if c, ok := ByName(name); ok {
		return c, true
	}
	return ByURL(rawURL)
}

// ByName applies NameRules to name.
func ByName(name string) (Category, bool) {
	lower := strings.ToLower(name)
	if strings.TrimSpace(lower) == "" {
		return "", false
	}
	for _, r := range NameRules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category, true
			}
		}
	}
	return "", false
}

// ByURL applies URLRules to the path segments of rawURL.
func ByURL(rawURL string) (Category, bool) {
	segs := types.PathSegments(strings.ToLower(rawURL))
	if len(segs) == 0 {
		return "", false
	}
	for _, r := range URLRules {
		for _, kw := range r.Keywords {
			for _, s := range segs {
				if s == kw {
					return r.Category, true
				}
			}
		}
	}
	return "", false
}

// Taxonomy returns the six storefront categories in display order.
func Taxonomy() []Category {
	return []Category{HandSanitizers, HandSoaps, FloorSanitizers, DisinfectantWipes, Dispensing, PeraceticAcid}
}

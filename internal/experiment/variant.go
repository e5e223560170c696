package experiment

// Variant is one of the fixed display treatments the recommendation widget
// can render as.
type Variant string

const (
	VariantCarousel Variant = "carousel"
	VariantGrid     Variant = "grid"
	VariantSidebar  Variant = "sidebar"
)

// variants is the assignment order; changing it reshuffles every bucket.
var variants = []Variant{VariantCarousel, VariantGrid, VariantSidebar}

// Variants returns all display variants in assignment order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// Assign buckets a user id into a display variant by summing its character
// codes modulo the variant count. Pure and stateless: the same id always
// lands in the same bucket. Regenerating the id moves the user to a new
// bucket, which is expected.
func Assign(userID string) Variant {
	sum := 0
	for _, r := range userID {
		sum += int(r)
	}
	return variants[sum%len(variants)]
}

package listing

import (
	"strconv"
	"strings"
)

// Columns filtered by the product listing.
const (
	columnName     = "name"
	columnCategory = "cat_id"
	columnColor    = "color"
	columnTag      = "tag"
	columnSize     = "size"
	columnPrice    = "price"
)

// Predicate is an ordered list of boolean sub-clauses plus the bind
// arguments they reference, in order. Placeholders are written as '?'.
type Predicate struct {
	Clauses []string
	Args    []any
}

// Empty reports whether no dimension is active.
func (p Predicate) Empty() bool {
	return len(p.Clauses) == 0
}

// Where renders "WHERE (c1) AND (c2) ...", or "" when no dimension is active.
//
// Each clause is parenthesised so that the OR inside a set-membership
// clause cannot bind across dimensions.
func (p Predicate) Where() string {
	if p.Empty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("WHERE ")
	for i, clause := range p.Clauses {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString("(")
		sb.WriteString(clause)
		sb.WriteString(")")
	}
	return sb.String()
}

func (p *Predicate) add(clause string, args ...any) {
	if clause == "" {
		return
	}
	p.Clauses = append(p.Clauses, clause)
	p.Args = append(p.Args, args...)
}

// Builder turns a FilterSpec into a Predicate.
type Builder struct {
	priceFloor   int
	priceCeiling int
}

// NewBuilder returns a Builder that only accepts price ranges inside
// [priceFloor, priceCeiling].
func NewBuilder(priceFloor, priceCeiling int) *Builder {
	return &Builder{priceFloor: priceFloor, priceCeiling: priceCeiling}
}

// Build renders the active dimensions of spec in a fixed order:
// keyword, category, color, tag, size, price.
func (b *Builder) Build(spec FilterSpec) Predicate {
	var p Predicate

	if keyword := strings.TrimSpace(spec.Keyword); keyword != "" {
		// Case-insensitive on every store: both sides are lowered.
		p.add("LOWER("+columnName+") LIKE ? ESCAPE '"+likeEscape+"'", ContainsPattern(strings.ToLower(keyword)))
	}

	p.add(inClause(columnCategory, spec.CategoryIDs))
	p.add(findInSetClause(columnColor, spec.ColorIDs))
	p.add(findInSetClause(columnTag, spec.TagIDs))
	p.add(findInSetClause(columnSize, spec.SizeIDs))
	p.add(b.priceClause(spec.PriceRange))

	return p
}

// InRange reports whether both bounds of r fall inside the price domain.
func (b *Builder) InRange(r PriceRange) bool {
	return b.priceFloor <= r.Min && r.Max <= b.priceCeiling && r.Min <= r.Max
}

func (b *Builder) priceClause(r *PriceRange) string {
	if r == nil || !b.InRange(*r) {
		return ""
	}
	return columnPrice + " BETWEEN " + strconv.Itoa(r.Min) + " AND " + strconv.Itoa(r.Max)
}

// inClause renders "col IN (1,2,3)". ids are parsed integers, so joining
// them cannot inject SQL.
func inClause(column string, ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	return column + " IN (" + joinInts(ids, ",") + ")"
}

// findInSetClause matches rows whose packed column contains any of ids.
func findInSetClause(column string, ids []int) string {
	if len(ids) == 0 {
		return ""
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "FIND_IN_SET(" + strconv.Itoa(id) + ", " + column + ")"
	}
	return strings.Join(parts, " OR ")
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

// Package domain models the specialty-coffee catalog: coffees, the roasters
// that sell them, the producers that grow them, and the tasting-note taxonomy
// used to classify their flavours.
//
// # Catalog Conventions
//
// Coffee names follow the "<base> - <variation>" display convention, e.g.
// "Kenya Nyeri - AA". The name is unique across the catalog.
//
// Characteristics (acidity, sweetness, bitterness) are normalized intensities
// in [0, 1]. Ratings are in [0, 5]. Prices are positive and the browse view
// works over the [0, 50] price domain.
//
// Producer coordinates are stored as [longitude, latitude], the order used by
// GeoJSON and Mapbox.
//
// # Identifiers
//
// Roasters, producers and coffees carry a stable identifier. When the dataset
// omits one it defaults to [Slug] of the display name: lowercase, with every
// run of whitespace replaced by a single hyphen. Coffees reference their
// roaster and producer by identifier; the catalog rejects dangling references
// at load time.
//
// # Taxonomy
//
// Every tasting note belongs to exactly one of fourteen categories and carries
// a two-colour display gradient. A coffee may list a note the taxonomy does
// not know; such notes are kept on the coffee but contribute no category, are
// skipped in display, and are excluded from flavour distributions.
//
// # Filtering and Aggregation
//
// [Filter] is a conjunctive predicate scan: an empty selection disables its
// axis, set-valued fields match when any value is selected, and ranges are
// inclusive. [Aggregate] reduces a subset to summary statistics and returns a
// defined zero case for an empty subset.
package domain

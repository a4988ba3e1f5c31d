// Package domain defines the core business entities for ration.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Profile: The body measurements a caloric estimate is computed from
//   - CaloricResult: A daily energy requirement
//   - FoodRecord: One entry of the food-nutrition dataset
//   - SearchResult: A capped, ordered set of matching food records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

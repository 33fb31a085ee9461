// Package kernel provides the value objects shared by every aggregate of the
// job matching domain.
//
// The package includes:
//   - UUID: an identifier whose zero value is rejected by Validate
//   - Location: a latitude/longitude pair with great-circle distance in kilometers
//   - NormalizeSkills and SkillsOverlap: case-insensitive skill set helpers
//
// UUID and Location are immutable and safe for concurrent use.
package kernel

// Package manifest implements the schema-versioned manifest of a map package.
//
// # Schemas
//
// Three schema shapes exist, each an immutable value implementing Snapshot:
//
//   - PreVersioning: no manifestVersion field; game version and seed are the
//     flat mcVersion and seed keys.
//   - V1: identical to PreVersioning but declares "manifestVersion": 1.
//   - V2: declares "manifestVersion": 2 and nests the game version and seed
//     under "world". V2 is the latest schema and is aliased as Manifest.
//
// # Resolution
//
// Decode reads the discriminator, decodes the payload into the schema it
// names and runs the migration table forward until the latest schema is
// reached:
//
//	raw bytes ──> DetectVersion ──> decoders[v] ──> migrations[v..latest) ──> Manifest
//
// A missing or null discriminator selects PreVersioning. Discriminators
// outside the known range fail with ErrUnknownVersion; payloads that do not
// match their schema fail with ErrMalformed. Migration never runs backwards.
//
// # Encoding
//
// Encode always writes the latest schema, pretty-printed with sorted keys, so
// repeated encodes of the same manifest are byte-identical and
// Decode(Encode(m)) reproduces m in canonical form (see Manifest.Normalized).
//
// # Features
//
// ComputeFeatures maps a manifest version to the FeatureSet it supports.
// Feature membership only grows with the version.
package manifest

// Package domain contains the core domain model for seqcheck.
//
// The domain is process- and persistence-agnostic: it does not depend on YAML
// parsing, os/exec invocation details, or the filesystem layout. Infra
// adapters map into/from these types.
package domain

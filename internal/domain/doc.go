// Package domain contains the bookmark model: value objects, the Bookmark
// aggregate, the repository port and the cross-entity duplicate rule.
//
// The domain is transport- and persistence-agnostic: it does not import
// net/http, database/sql or redis. Adapters map into and from these types.
package domain

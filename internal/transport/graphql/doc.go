// Package graphql provides the GraphQL transport for published lessons.
// The schema is small and read-only, so its executor is written by hand
// against the gqlgen runtime instead of being generated. Entry lists are
// batched per request through the dataloader package.
package graphql

// Package resources exposes platform entities as readable MCP resources.
//
// Each Provider serves one URI scheme. A bare root like profiles:// lists
// the entities; profiles://<name> reads one. The identifier is everything
// after the scheme marker, taken verbatim.
//
// Empty lists resolve to a plain-text sentinel ("No profiles found.")
// rather than an empty payload, so a client always gets readable contents
// back. A well-formed URI naming a missing entity resolves to ErrNotFound;
// a URI with no registered scheme resolves to ErrInvalidURI. The protocol
// layer maps those to distinct JSON-RPC errors.
package resources

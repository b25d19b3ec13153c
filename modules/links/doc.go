// Package links exposes link management over HTTP: authenticated CRUD and
// reordering with plan quota headers, plus the unauthenticated public page
// endpoint that serves a profile's visible links.
package links

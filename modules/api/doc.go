// Package api holds the small shared surface of the HTTP modules: the JSON
// response envelope, request decoding, and request identity plumbing.
//
// Identity flows through the context. An authenticator middleware resolves
// the caller and stores the user id with SetUserIDToContext; handlers behind
// RequireUser read it back with GetUserIDFromContext.
package api

// Command hashtoken creates and checks the bcrypt hash that guards the
// memwatch HTTP API.
//
// Usage:
//
//	hashtoken <command>
//
// Commands:
//
//	hash    Prompt twice for a token without echo and print its bcrypt
//	        hash. Put the result in API_TOKEN_HASH.
//
//	check   Prompt for a token and report whether it matches the hash in
//	        API_TOKEN_HASH.
//
// Clients then send the token as "Authorization: Bearer <token>".
package main

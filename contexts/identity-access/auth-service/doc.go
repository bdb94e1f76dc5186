// Package authservice authenticates administrative users with bcrypt
// password hashes and HS256 JWTs. Booth voting routes stay token-free; this
// module protects the management surface only.
package authservice

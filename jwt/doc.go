// Package jwt issues and verifies the short-lived bearer tokens that grant
// read access to the stats endpoint. Tokens carry a space-separated scope claim.
package jwt

// Package token provides random token generation and comparison helpers.
//
// Session identifiers and anti-forgery tokens handed to browsers are
// produced here. Both are drawn from crypto/rand with at least 128 bits
// of entropy; comparison is constant-time.
package token

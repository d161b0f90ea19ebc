// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/sample), and the
// client-info context stamped onto entities lives in domain/clientinfo.
// This root package holds sentinel errors and validation types.
package domain

// Package pagedigest extracts a readable title, body text, and icon from
// arbitrary HTML pages for a batch of URLs. Individual pages may fail to
// fetch, decode, or parse without affecting the rest of the batch.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, charset/).
package pagedigest

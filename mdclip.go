// Package mdclip saves the readable content of a web page as a Markdown file.
// It renders a single page, extracts its main content and metadata, converts
// it to Markdown, optionally enriches it with Gemini-derived metadata, and
// delivers the result to disk while keeping a deduplicating extraction history.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package mdclip

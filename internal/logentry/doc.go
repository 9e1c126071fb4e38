// Package logentry defines the Entry type produced by log reconstruction.
//
// # Overview
//
// An Entry is one logical log record that may span several physical lines.
// Construction does three things, in this order:
//
//  1. Segment: insert line breaks after balanced ")" and "]" groups so long
//     single-line records become scannable chunks
//  2. Extract the date key from the leading date/time tokens
//  3. Extract the type tag (the third whitespace-separated token)
//
// The type tag is registered with the shared registry.Registry as soon as it is
// extracted, so type priorities follow the order in which tags first appear.
//
// # Segmentation
//
// Parentheses and brackets are tracked independently. The first opener of a
// group arms the tracker, nested openers increase its depth, and the closer
// that returns it to zero gets a line break appended:
//
//	2016-06-23 10:00:00 INFO started (ok) [x]
//
// becomes
//
//	2016-06-23 10:00:00 INFO started (ok)
//	 [x]
//
// Closers seen before any opener are left alone.
//
// # Extraction
//
// Date key: the first 24 characters, cut where the type token begins, with
// whitespace and the characters "-", "," and ":" removed. For
// "2016-06-23 10:00:00,123 WARN" the key is "20160623100000123". Keys compare
// lexicographically; they are never parsed as dates.
//
// Type tag: the third whitespace-separated token within the first 50
// characters, or "" when there are fewer than three tokens.
//
// Neither extraction can fail. Malformed headers degrade to empty fields.
//
// # Visibility
//
// Visible tracks whether the windowing logic in package collection has
// delivered the entry since the last reset. It is an atomic flag so a
// presentation goroutine may read it while the collection updates it.
// Render state (expanded panes, wrapped bodies) is owned by the presentation
// layer and keyed by ID.
package logentry

// Package generic reads chapter pages of a web-novel site laid out the usual
// way: a book name element, an h1 heading, a content container and a "next"
// link at the bottom. All selectors are configurable so sibling sites with
// different ids can be crawled with the same code.
package generic

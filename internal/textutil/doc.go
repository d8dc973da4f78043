// Package textutil holds small string helpers shared by the renderers and
// the CLI: file name slugs, display truncation, and whitespace collapsing.
package textutil

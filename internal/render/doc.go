// Package render writes generated content to disk in the requested format.
//
// Each Renderer takes the content, the original query, and a destination
// directory, and returns the path it wrote. File names are derived from the
// query and the UTC time; a lock file in the destination serializes name
// selection so concurrent runs get distinct numbered names.
//
//   - markdown: the content as-is, with a title heading when it lacks one.
//   - pdf: wrapped, paginated A4 text in the standard Helvetica fonts,
//     produced by pdfcpu from a JSON page description.
//   - ppt: the "--- Slide: <title> ---" outline converted to an OOXML
//     presentation with bullet lists and speaker notes.
package render

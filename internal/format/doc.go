// Package format enumerates the document outputs searchai can produce.
//
// Each Format carries everything format-specific the pipeline needs: the
// prompt block that tells the model how to lay the document out, the default
// generation parameters, and the file extension the renderer writes. Adding a
// format means extending this package and registering a renderer; no other
// stage branches on format names.
package format

// Package render provides the raster primitives under the compositor: a
// reusable RGBA canvas with cover/contain/circle blits, global color
// filters, a box-blur effect stage, and a cached typeface for overlay text.
//
// Scaling goes through golang.org/x/image/draw; vector and text drawing on
// top of the canvas is done by the overlay package with fogleman/gg.
package render

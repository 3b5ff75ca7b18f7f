// Package overlay models and renders the graphical layers drawn above
// composited video: logo, banner, lower third, ticker, bullet lists,
// freestyle text, countdown, and the full-screen overlay variants.
//
// Settings form an immutable per-tick snapshot; the renderer's only
// persistent state is the ticker scroll offset. Z-order is fixed and not
// configurable, and elements whose assets are not ready are skipped for the
// tick rather than blocking the render loop.
package overlay

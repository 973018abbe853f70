// Package render draws placed rectangles to raster and vector outputs.
//
// # Renderers
//
// A [Renderer] accumulates rectangles and encodes them as PNG. Three
// variants exist:
//
//   - [AutoAdjust]: the canvas grows to the bounding box of everything added
//     and every rectangle is offset so negative coordinates stay visible.
//   - [ContentFitting]: like AutoAdjust, on a black background with a
//     seeded random stroke colour per rectangle.
//   - [Fixed]: a fixed-size canvas with the origin at its center. Rectangles
//     are drawn as they are added; anything outside the canvas is clipped.
//
// The adjusting renderers size the canvas from bounds that start at zero:
//
//	width  = |minX| + |maxX| + 1
//	height = |minY| + |maxY| + 1
//
// so an empty renderer encodes a 1x1 image.
//
// # Vector sinks
//
// [RenderSVG] and [RenderPDF] produce the same picture as AutoAdjust in
// vector form. Both accept the renderer [Option] values that make sense for
// them (stroke, background, labels).
//
//	r := render.NewAutoAdjust(render.WithLabels())
//	r.AddRectangles(engine.Rectangles())
//	if err := r.SaveImage("render.png"); err != nil {
//	    return err
//	}
package render

// Package layout places rectangles of caller-supplied size into a dense,
// roughly circular cluster around a fixed center.
//
// # Frontier placement
//
// The default engine, [Circular], keeps a FIFO queue of frontier vertices.
// Every placed rectangle contributes four vertices, one per [Direction],
// anchored at its corners. To place the next rectangle the engine dequeues
// vertices until the candidate anchored at one of them does not overlap any
// placed rectangle. After each placement the engine-wide direction rotates,
// so consecutive rectangles seed the queue starting from different corners
// and the cluster grows as a pinwheel instead of a single arm.
//
// # Spiral placement
//
// [Spiral] is the older strategy: it walks an Archimedean spiral outwards
// from the center and takes the first point where the rectangle fits. It is
// kept behind the same [Layouter] interface for comparison.
//
// # Concurrency
//
// Engines are plain in-memory state machines and are not safe for
// concurrent use. Callers sharing an engine must serialize access.
//
// # Example
//
//	engine := layout.NewCircular()
//	for _, size := range sizes {
//	    rect, err := engine.PutNextRectangle(size)
//	    if err != nil {
//	        return err
//	    }
//	    renderer.AddRectangle(rect)
//	}
package layout

// Package novage provides the shared value types for the NovaGE 2D
// drawing toolkit: colors, points, rectangles, and a frame-pacing clock.
//
// The toolkit exposes a familiar immediate-mode drawing surface on top of
// a batched renderer. A typical program looks like:
//
//	ctx, err := display.New(display.Config{Width: 800, Height: 600, Title: "demo"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Quit()
//
//	clock := novage.NewClock()
//	for {
//	    if len(event.Poll(ctx.Window())) > 0 {
//	        break
//	    }
//	    ctx.Fill(novage.Black)
//	    draw.Rect(ctx.Surface(), novage.Red, novage.NewRect(100, 50, 200, 80), 0)
//	    ctx.Flip()
//	    clock.Tick(60)
//	}
//
// Draw calls are accumulated into a single batch per frame and submitted
// in one pass when Flip is called. See the display and draw packages for
// the drawing API, render for the renderer collaborator interfaces, and
// backend for renderer backend selection.
//
// Coordinate conventions: the drawing API uses screen space (origin
// top-left, Y down, the pixel convention). The renderer operates in
// render space (origin bottom-left, Y up). The display package owns the
// conversion; user code never sees render-space coordinates.
package novage

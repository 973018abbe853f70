package layout_test

import (
	"fmt"

	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
)

func ExampleCircular() {
	engine := layout.NewCircular()
	for _, size := range []geom.Size{geom.Sz(10, 10), geom.Sz(4, 6), geom.Sz(4, 6)} {
		rect, err := engine.PutNextRectangle(size)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(rect)
	}
	// Output:
	// <0, 0, 10, 10>
	// <10, 0, 4, 6>
	// <6, 10, 4, 6>
}

func ExampleDirection_Next() {
	d := layout.Up
	for range 4 {
		fmt.Print(d, " ")
		d = d.Next()
	}
	fmt.Println(d)
	// Output: up right down left up
}

func ExampleVertices() {
	for _, v := range layout.Vertices(geom.Rect(0, 0, 4, 2), layout.Up) {
		fmt.Println(v.Direction, v.Location, v.Length)
	}
	// Output:
	// right <4, 0> 2
	// down <4, 2> 4
	// left <0, 2> 2
	// up <0, 0> 4
}
